package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/meilisearch/meilisearch-go"

	"github.com/askdb/askdb/config"
)

var sampleTickets = []map[string]any{
	{
		"ticket_id":   "TCK-1001",
		"description": "Login fails with a 500 error after the password reset flow.",
		"raised_by":   "Hannah Lee",
		"status":      "Open",
	},
	{
		"ticket_id":   "TCK-1002",
		"description": "Invoice PDF download is truncated for invoices over 100 line items.",
		"raised_by":   "Omar Haddad",
		"status":      "In Progress",
	},
	{
		"ticket_id":   "TCK-1003",
		"description": "Search results page shows stale data after a product rename.",
		"raised_by":   "Hannah Lee",
		"status":      "Closed",
	},
	{
		"ticket_id":   "TCK-1004",
		"description": "Two-factor authentication codes arrive several minutes late.",
		"raised_by":   "Greta Fischer",
		"status":      "Open",
	},
}

// SearchIndex rebuilds the support ticket index and waits for the indexing
// task to settle so a seed-then-ask sequence sees the data.
func SearchIndex(ctx context.Context, cfg config.SearchIndexConfig) error {
	client := meilisearch.New(cfg.Host, meilisearch.WithAPIKey(cfg.APIKey))
	defer client.Close()

	index := client.Index(cfg.Index)
	if _, err := index.DeleteAllDocumentsWithContext(ctx); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	task, err := index.AddDocumentsWithContext(ctx, sampleTickets, "ticket_id")
	if err != nil {
		return fmt.Errorf("add sample tickets: %w", err)
	}
	if _, err := client.WaitForTaskWithContext(ctx, task.TaskUID, 100*time.Millisecond); err != nil {
		return fmt.Errorf("wait for indexing: %w", err)
	}
	return nil
}
