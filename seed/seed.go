// Package seed loads a small, coherent sample dataset into each configured
// backend so the pipeline can be exercised end to end on a fresh machine.
package seed

import (
	"context"
	"fmt"

	"github.com/askdb/askdb/common/logger"
	"github.com/askdb/askdb/config"
)

// All seeds every backend with a non-empty config section. The first failure
// aborts; seeding is a setup step, not a best-effort one.
func All(ctx context.Context, cfg config.BackendsConfig) error {
	if cfg.Relational.Path != "" {
		if err := Relational(ctx, cfg.Relational); err != nil {
			return fmt.Errorf("seed relational backend failed, err: %w", err)
		}
		logger.Infof("seed: relational backend loaded at %s", cfg.Relational.Path)
	}
	if cfg.Document.URI != "" {
		if err := Document(ctx, cfg.Document); err != nil {
			return fmt.Errorf("seed document backend failed, err: %w", err)
		}
		logger.Infof("seed: document backend loaded into %s.%s", cfg.Document.Database, cfg.Document.Collection)
	}
	if cfg.SearchIndex.Host != "" {
		if err := SearchIndex(ctx, cfg.SearchIndex); err != nil {
			return fmt.Errorf("seed search index failed, err: %w", err)
		}
		logger.Infof("seed: search index %s loaded", cfg.SearchIndex.Index)
	}
	if cfg.Graph.URI != "" {
		if err := Graph(ctx, cfg.Graph); err != nil {
			return fmt.Errorf("seed graph backend failed, err: %w", err)
		}
		logger.Infof("seed: graph backend loaded")
	}
	return nil
}
