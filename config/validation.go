package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error [%s]: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("found %d configuration error(s):\n", len(errs)))
	for i, err := range errs {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Message))
	}
	return b.String()
}

// Validate validates the complete configuration. A missing LLM API key is a
// fatal startup condition, never a per-request error.
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, c.validateLLM()...)
	errs = append(errs, c.validateBackends()...)
	errs = append(errs, c.validateLimits()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validateLLM() ValidationErrors {
	var errs ValidationErrors

	if c.LLM.APIKey == "" {
		errs = append(errs, ValidationError{
			Field:   "llm.api_key",
			Message: "llm api key is required (set llm.api_key or the ASKDB_API_KEY environment variable)",
		})
	}

	if c.LLM.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "llm.model",
			Message: "llm model is required",
		})
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "llm.temperature",
			Message: fmt.Sprintf("llm temperature must be in [0, 2], got %.2f", c.LLM.Temperature),
		})
	}

	if c.LLM.MaxTokens < 0 {
		errs = append(errs, ValidationError{
			Field:   "llm.max_tokens",
			Message: fmt.Sprintf("llm max_tokens must be non-negative, got %d", c.LLM.MaxTokens),
		})
	}

	return errs
}

func (c *Config) validateBackends() ValidationErrors {
	var errs ValidationErrors

	if c.Backends.Relational.Path == "" {
		errs = append(errs, ValidationError{
			Field:   "backends.relational.path",
			Message: "relational database path is required",
		})
	}

	if c.Backends.Document.URI != "" {
		if c.Backends.Document.Database == "" {
			errs = append(errs, ValidationError{
				Field:   "backends.document.database",
				Message: "document database name is required when a document uri is set",
			})
		}
		if c.Backends.Document.Collection == "" {
			errs = append(errs, ValidationError{
				Field:   "backends.document.collection",
				Message: "document collection name is required when a document uri is set",
			})
		}
	}

	if c.Backends.SearchIndex.Host != "" && c.Backends.SearchIndex.Index == "" {
		errs = append(errs, ValidationError{
			Field:   "backends.search_index.index",
			Message: "search index name is required when a search host is set",
		})
	}

	return errs
}

func (c *Config) validateLimits() ValidationErrors {
	var errs ValidationErrors

	if c.Limits.ContextTokenBudget < 0 {
		errs = append(errs, ValidationError{
			Field:   "limits.context_token_budget",
			Message: fmt.Sprintf("context token budget must be non-negative, got %d", c.Limits.ContextTokenBudget),
		})
	}

	if c.Limits.MaxResultRows < 0 {
		errs = append(errs, ValidationError{
			Field:   "limits.max_result_rows",
			Message: fmt.Sprintf("max result rows must be non-negative, got %d", c.Limits.MaxResultRows),
		})
	}

	return errs
}
