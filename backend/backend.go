package backend

import (
	"context"
	"fmt"

	"github.com/askdb/askdb/common/logger"
	"github.com/askdb/askdb/config"
	"github.com/askdb/askdb/schema"
)

// Adapter executes one generated payload against one backend and folds the
// result into a normalized Outcome. Adapters never raise past this boundary:
// unreachable stores, malformed payloads, and driver failures all come back as
// error outcomes so the orchestrator can apply uniform policy.
type Adapter interface {
	Kind() schema.BackendKind
	// Execute runs payload and normalizes the result to data, empty, or error.
	Execute(ctx context.Context, payload string) schema.Outcome
	// Describe returns the schema text the query generator embeds in its
	// prompt for this backend.
	Describe(ctx context.Context) string
}

// Registry holds the configured adapters, one per routable kind. Backends
// with an empty config section are simply absent; routing to one yields an
// error outcome.
type Registry struct {
	adapters map[schema.BackendKind]Adapter
}

// NewRegistry builds the adapter set from configuration.
func NewRegistry(cfg config.BackendsConfig, limits config.LimitsConfig) *Registry {
	maxRows := limits.MaxResultRows
	if maxRows <= 0 {
		maxRows = 50
	}

	r := &Registry{adapters: make(map[schema.BackendKind]Adapter)}
	if cfg.Relational.Path != "" {
		r.register(newSQLiteAdapter(cfg.Relational, maxRows))
	}
	if cfg.Document.URI != "" {
		r.register(newMongoAdapter(cfg.Document, maxRows))
	}
	if cfg.SearchIndex.Host != "" {
		r.register(newMeiliAdapter(cfg.SearchIndex, maxRows))
	}
	if cfg.Graph.URI != "" {
		r.register(newNeo4jAdapter(cfg.Graph, maxRows))
	}
	return r
}

func (r *Registry) register(a Adapter) {
	r.adapters[a.Kind()] = a
}

// Adapter returns the adapter for kind, if one is configured.
func (r *Registry) Adapter(kind schema.BackendKind) (Adapter, bool) {
	a, ok := r.adapters[kind]
	return a, ok
}

// Execute dispatches payload to the adapter for kind.
func (r *Registry) Execute(ctx context.Context, kind schema.BackendKind, payload string) schema.Outcome {
	a, ok := r.adapters[kind]
	if !ok {
		return schema.ErrorOutcome(fmt.Sprintf("no backend configured for data source %q", kind))
	}
	logger.Debugf("backend: executing against %s: %s", kind, payload)
	out := a.Execute(ctx, payload)
	logger.Infof("backend: %s execution finished with status %s", kind, out.Status)
	return out
}

// Describe returns the schema description for kind, or an empty string when
// the backend is not configured.
func (r *Registry) Describe(ctx context.Context, kind schema.BackendKind) string {
	a, ok := r.adapters[kind]
	if !ok {
		return ""
	}
	return a.Describe(ctx)
}
