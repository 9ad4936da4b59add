package backend

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/askdb/askdb/common/logger"
	"github.com/askdb/askdb/config"
	"github.com/askdb/askdb/schema"
)

// neo4jAdapter runs generated Cypher against the collaboration graph.
type neo4jAdapter struct {
	uri      string
	username string
	password string
	maxRows  int
}

func newNeo4jAdapter(cfg config.GraphConfig, maxRows int) *neo4jAdapter {
	return &neo4jAdapter{
		uri:      cfg.URI,
		username: cfg.Username,
		password: cfg.Password,
		maxRows:  maxRows,
	}
}

func (a *neo4jAdapter) Kind() schema.BackendKind { return schema.KindGraph }

func (a *neo4jAdapter) Execute(ctx context.Context, payload string) schema.Outcome {
	driver, err := neo4j.NewDriverWithContext(a.uri, neo4j.BasicAuth(a.username, a.password, ""))
	if err != nil {
		return schema.ErrorOutcome(fmt.Sprintf("create neo4j driver failed, err: %v", err))
	}
	defer func() {
		if err := driver.Close(ctx); err != nil {
			logger.Warnf("backend: neo4j driver close failed: %v", err)
		}
	}()

	result, err := neo4j.ExecuteQuery(ctx, driver, payload, nil, neo4j.EagerResultTransformer)
	if err != nil {
		return schema.ErrorOutcome(fmt.Sprintf("cypher query failed, err: %v", err))
	}
	if len(result.Records) == 0 {
		return schema.EmptyOutcome()
	}

	records := make([]map[string]any, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, rec.AsMap())
	}
	return schema.DataOutcome(formatRecords(records, a.maxRows))
}

func (a *neo4jAdapter) Describe(ctx context.Context) string {
	return `Neo4j graph of researchers and what they work on.
Node labels:
- Researcher: properties "name" (string), "field" (string)
- ProjectOrTopic: properties "name" (string), "domain" (string)
Relationship types:
- (:Researcher)-[:COLLABORATES_WITH]->(:Researcher)
- (:Researcher)-[:WORKS_ON]->(:ProjectOrTopic)`
}
