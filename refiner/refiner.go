package refiner

import (
	"context"
	"fmt"

	"github.com/askdb/askdb/common/logger"
	"github.com/askdb/askdb/llm"
	"github.com/askdb/askdb/schema"
)

// Markers delimiting the refined query in the model's output. Everything
// outside them is the model's reasoning and gets discarded.
const (
	RefinedQueryStart = "REFINED_QUERY_START"
	RefinedQueryEnd   = "REFINED_QUERY_END"
)

// SchemaSource supplies the schema hint embedded in the refinement prompt.
// Satisfied by the backend registry.
type SchemaSource interface {
	Describe(ctx context.Context, kind schema.BackendKind) string
}

// Refiner rewrites a query that executed cleanly but matched nothing. It is
// only invoked on the empty path; execution errors never reach it.
type Refiner struct {
	Provider llm.Provider
	Schemas  SchemaSource
}

// New creates a query refiner.
func New(provider llm.Provider, schemas SchemaSource) *Refiner {
	return &Refiner{Provider: provider, Schemas: schemas}
}

const refinePromptTemplate = `A query against a %s data source ran successfully but returned no results. Rewrite it so it is more likely to match the data the user is asking about.

Data source schema:
%s

Original user question: %q
Failed query:
%s

Rewriting strategies to consider:
- Make string matching case-insensitive.
- Match partial values instead of exact ones (substring or regex matching).
- Expand likely acronyms, e.g. "RAG" to "Retrieval-Augmented Generation", and try both forms.
- Search across multiple plausible fields (combine with OR / $or).
- Broaden overly narrow conditions (widen ranges, drop a restrictive clause).

Keep the query in the same language and syntax as the failed query. It must remain directly executable against the same data source.

Think through which strategy fits, then output the rewritten query between the markers below, with nothing else between them:
%s
<rewritten query>
%s`

// Refine produces a replacement payload for the state's failed query. When
// the refined query cannot be extracted from the model output, the original
// payload is resubmitted unchanged; a wasted attempt is better than executing
// free-form prose as a query.
func (r *Refiner) Refine(ctx context.Context, st schema.RunState) schema.RunState {
	failed := st.LastFailedQuery
	if failed == "" {
		failed = st.GeneratedQuery
	}
	logger.Infof("refiner: rewriting %s query after empty result", st.DataSource)

	prompt := fmt.Sprintf(refinePromptTemplate,
		st.DataSource, r.describe(ctx, st.DataSource),
		st.OriginalUserQuery, failed, RefinedQueryStart, RefinedQueryEnd)

	refined := failed
	raw, err := r.Provider.GenerateCompletion(ctx, prompt)
	if err != nil {
		logger.Warnf("refiner: refinement call failed, resubmitting original query: %v", err)
	} else if extracted, ok := extractRefined(raw, st.DataSource); ok {
		refined = extracted
	} else {
		logger.Warnf("refiner: no refined query in model output, resubmitting original query")
	}

	st.GeneratedQuery = refined
	st.LastFailedQuery = ""
	st.NeedsRefinement = false
	return st
}

func (r *Refiner) describe(ctx context.Context, kind schema.BackendKind) string {
	if r.Schemas == nil {
		return "(schema unavailable)"
	}
	if desc := r.Schemas.Describe(ctx, kind); desc != "" {
		return desc
	}
	return "(schema unavailable)"
}

// extractRefined pulls the rewritten query out of raw model output. Marker
// extraction first; for the document backend a bare JSON object anywhere in
// the output is accepted as a fallback, since the filter is self-delimiting.
func extractRefined(raw string, kind schema.BackendKind) (string, bool) {
	if body, ok := llm.ExtractBetweenMarkers(raw, RefinedQueryStart, RefinedQueryEnd); ok {
		cleaned := llm.CleanPayload(body)
		if cleaned != "" {
			return cleaned, true
		}
	}
	if kind == schema.KindDocument {
		if obj, ok := llm.ExtractJSONObject(raw); ok {
			return obj, true
		}
	}
	return "", false
}
