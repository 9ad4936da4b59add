package askdb

import (
	"context"
	"fmt"

	"github.com/askdb/askdb/backend"
	"github.com/askdb/askdb/config"
	"github.com/askdb/askdb/generator"
	"github.com/askdb/askdb/llm"
	"github.com/askdb/askdb/orchestrator"
	"github.com/askdb/askdb/refiner"
	"github.com/askdb/askdb/responder"
	"github.com/askdb/askdb/router"
	"github.com/askdb/askdb/schema"
)

// Client is the public entry point: one Client answers natural-language
// questions against the configured backends. Safe for concurrent use; each
// Ask runs an independent cycle.
type Client struct {
	config   *config.Config
	provider llm.Provider
	backends *backend.Registry
	orch     *orchestrator.Orchestrator
}

// NewClient wires the full pipeline from configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create llm provider failed, err: %w", err)
	}

	backends := backend.NewRegistry(cfg.Backends, cfg.Limits)
	orch := orchestrator.New(
		router.New(provider),
		generator.New(provider, backends),
		backends,
		refiner.New(provider, backends),
		responder.New(provider, cfg.Limits.ContextTokenBudget),
	)

	return &Client{
		config:   cfg,
		provider: provider,
		backends: backends,
		orch:     orch,
	}, nil
}

// Ask answers one question and returns the terminal run state. The state's
// Response field always holds the text to show the user; when
// ClarificationNeeded is set, that text is a follow-up question and the caller
// should come back through AskClarified.
func (c *Client) Ask(ctx context.Context, question string) schema.RunState {
	return c.orch.Run(ctx, question)
}

// AskClarified resumes after a clarification round: it merges the user's
// clarifying input with the question that triggered it and runs a fresh cycle.
func (c *Client) AskClarified(ctx context.Context, prior schema.RunState, clarification string) schema.RunState {
	merged := schema.MergeClarified(prior, clarification)
	return c.orch.Run(ctx, merged.Query)
}
