package backend

import (
	"context"
	"fmt"

	"github.com/meilisearch/meilisearch-go"

	"github.com/askdb/askdb/config"
	"github.com/askdb/askdb/schema"
)

// meiliAdapter runs a generated search phrase against the support ticket
// index. The payload is a plain keyword string, not a structured query.
type meiliAdapter struct {
	host    string
	apiKey  string
	index   string
	maxRows int
}

func newMeiliAdapter(cfg config.SearchIndexConfig, maxRows int) *meiliAdapter {
	return &meiliAdapter{
		host:    cfg.Host,
		apiKey:  cfg.APIKey,
		index:   cfg.Index,
		maxRows: maxRows,
	}
}

func (a *meiliAdapter) Kind() schema.BackendKind { return schema.KindSearchIndex }

func (a *meiliAdapter) Execute(ctx context.Context, payload string) schema.Outcome {
	client := meilisearch.New(a.host, meilisearch.WithAPIKey(a.apiKey))
	defer client.Close()

	resp, err := client.Index(a.index).SearchWithContext(ctx, payload, &meilisearch.SearchRequest{
		Limit: int64(a.maxRows),
	})
	if err != nil {
		return schema.ErrorOutcome(fmt.Sprintf("meilisearch query failed, err: %v", err))
	}
	if len(resp.Hits) == 0 {
		return schema.EmptyOutcome()
	}

	records := make([]map[string]any, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		if doc, ok := hit.(map[string]any); ok {
			records = append(records, doc)
		}
	}
	if len(records) == 0 {
		return schema.EmptyOutcome()
	}
	return schema.DataOutcome(formatRecords(records, a.maxRows))
}

func (a *meiliAdapter) Describe(ctx context.Context) string {
	return fmt.Sprintf(`MeiliSearch index %q holding customer support tickets.
Ticket fields:
- ticket_id (string): unique ticket identifier
- description (string): free-text description of the issue
- raised_by (string): name of the person who raised the ticket
- status (string): one of "Open", "In Progress", "Closed"`, a.index)
}
