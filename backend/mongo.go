package backend

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/askdb/askdb/common/logger"
	"github.com/askdb/askdb/config"
	"github.com/askdb/askdb/schema"
)

// mongoAdapter runs a generated extended-JSON filter against the research
// papers collection. A filter that does not parse as extended JSON is an
// error outcome, not an empty one: garbage payloads must not trigger the
// refinement path.
type mongoAdapter struct {
	uri        string
	database   string
	collection string
	maxRows    int
}

func newMongoAdapter(cfg config.DocumentConfig, maxRows int) *mongoAdapter {
	return &mongoAdapter{
		uri:        cfg.URI,
		database:   cfg.Database,
		collection: cfg.Collection,
		maxRows:    maxRows,
	}
}

func (a *mongoAdapter) Kind() schema.BackendKind { return schema.KindDocument }

func (a *mongoAdapter) Execute(ctx context.Context, payload string) schema.Outcome {
	var filter bson.D
	if err := bson.UnmarshalExtJSON([]byte(payload), false, &filter); err != nil {
		return schema.ErrorOutcome(fmt.Sprintf("parse mongodb filter failed, err: %v", err))
	}

	client, err := mongo.Connect(options.Client().ApplyURI(a.uri))
	if err != nil {
		return schema.ErrorOutcome(fmt.Sprintf("connect to mongodb failed, err: %v", err))
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			logger.Warnf("backend: mongodb disconnect failed: %v", err)
		}
	}()

	coll := client.Database(a.database).Collection(a.collection)
	cur, err := coll.Find(ctx, filter, options.Find().SetLimit(int64(a.maxRows+1)))
	if err != nil {
		return schema.ErrorOutcome(fmt.Sprintf("mongodb find failed, err: %v", err))
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return schema.ErrorOutcome(fmt.Sprintf("read mongodb documents failed, err: %v", err))
	}
	if len(docs) == 0 {
		return schema.EmptyOutcome()
	}

	records := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		delete(doc, "_id")
		records = append(records, map[string]any(doc))
	}
	return schema.DataOutcome(formatRecords(records, a.maxRows))
}

func (a *mongoAdapter) Describe(ctx context.Context) string {
	return fmt.Sprintf(`MongoDB collection %q in database %q holding scientific research papers.
Document fields:
- title (string): the paper's title
- authors (array of strings): author names
- year (int): publication year
- topic (string): the research area, e.g. "Natural Language Processing"
- keywords (array of strings): topical keywords
- publication (object): with fields "journal" (string) and "type" (string, e.g. "Conference", "Journal")`,
		a.collection, a.database)
}
