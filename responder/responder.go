package responder

import (
	"context"
	"fmt"

	"github.com/askdb/askdb/common/logger"
	"github.com/askdb/askdb/llm"
	"github.com/askdb/askdb/schema"
)

// Responder turns the cycle's final state into the user-facing answer. It is
// the only stage allowed to address the user directly.
type Responder struct {
	Provider    llm.Provider
	TokenBudget int
}

// New creates a responder. tokenBudget caps the retrieved context embedded in
// the synthesis prompt; zero disables the trim.
func New(provider llm.Provider, tokenBudget int) *Responder {
	return &Responder{Provider: provider, TokenBudget: tokenBudget}
}

const answerPromptTemplate = `You are a helpful data assistant. Answer the user's question using only the retrieved data below.

User question: %q

Retrieved data:
%s

Rules:
- Base the answer only on the retrieved data. Do not invent facts.
- If the retrieved data says "%s", tell the user that no matching records were found; do not speculate about why.
- When the data contains multiple records, present them as a bulleted list.
- Keep the answer concise and direct.`

// Respond fills in the Response field. Clarification cycles pass through
// untouched: the front end consumes ClarificationText, and Response stays
// unset. Hard-error cycles are answered from a template without calling the
// model; the model only speaks when there is real retrieved context to ground
// it.
func (r *Responder) Respond(ctx context.Context, st schema.RunState) schema.RunState {
	switch {
	case st.ClarificationNeeded:
		return st
	case st.Error != "":
		logger.Warnf("responder: answering error cycle without synthesis: %s", st.Error)
		if st.Context == schema.EmptyResultMarker {
			// The refinement budget ran out on a clean empty result. That is
			// a legitimate "no data" answer, not a failure to apologize for.
			st.Response = "I could not find any records matching your question, even after broadening the search."
		} else {
			st.Response = fmt.Sprintf(
				"I'm sorry, I was unable to answer your question. (%s)", st.Error)
		}
		return st
	}

	contextText := st.Context
	if contextText == "" {
		contextText = schema.EmptyResultMarker
	}
	contextText = llm.TruncateToTokens(contextText, r.TokenBudget)

	prompt := fmt.Sprintf(answerPromptTemplate,
		st.OriginalUserQuery, contextText, schema.EmptyResultMarker)
	answer, err := r.Provider.GenerateCompletion(ctx, prompt)
	if err != nil {
		logger.Errorf("responder: answer synthesis failed: %v", err)
		st = st.WithError(fmt.Sprintf("answer synthesis failed: %v", err))
		st.Response = fmt.Sprintf(
			"I'm sorry, I was unable to answer your question. (%s)", st.Error)
		return st
	}
	st.Response = answer
	return st
}
