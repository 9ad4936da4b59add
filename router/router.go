package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/askdb/askdb/common/logger"
	"github.com/askdb/askdb/llm"
	"github.com/askdb/askdb/schema"
)

// Router classifies a free-text question into exactly one backend category.
// The decision is irrevocable for the cycle: everything downstream trusts the
// chosen data source without re-validating it.
type Router struct {
	Provider llm.Provider
}

// New creates a router backed by the given text-generation provider.
func New(provider llm.Provider) *Router {
	return &Router{Provider: provider}
}

const routePromptTemplate = `You are an expert routing assistant. Your only task is to classify a user's question into one of the following categories.

Here are the available data source categories:
- "relational": questions about company employees, their roles and departments, projects they work on, or project statuses.
- "document": questions about scientific research papers, their authors, publication years, topics, or keywords.
- "search_index": questions about support tickets, who raised them, their descriptions, or their status.
- "graph": questions about how researchers collaborate with each other or which projects and topics they work on together.
- "clarification_needed": the question is too vague or ambiguous to route. Also provide a short follow-up question asking the user what they mean.
- "reject": a general conversational question that none of the data sources can answer.

Analyze the user's question provided below.
User Question: %q

Respond with a single, raw JSON object with the key "data_source" set to one of the six category names above. When the category is "clarification_needed", add a second key "clarification_question" with the follow-up question to ask the user.
Do not provide any explanation, preamble, or any text other than the JSON object itself.

Example:
User Question: Who is the project manager?
JSON Response: {"data_source": "relational"}`

// Route runs the classifier and returns the updated run state. Exactly one
// category is chosen; call failures and unparsable decisions both terminate
// the cycle with data source "end".
func (r *Router) Route(ctx context.Context, st schema.RunState) schema.RunState {
	logger.Infof("router: classifying question %q", st.Query)

	prompt := fmt.Sprintf(routePromptTemplate, st.Query)
	raw, err := r.Provider.GenerateCompletion(ctx, prompt)
	if err != nil {
		logger.Errorf("router: classification call failed: %v", err)
		st.DataSource = schema.KindEnd
		return st.WithError(fmt.Sprintf("could not determine a data source for the query: %v", err))
	}

	decision, clarification, err := parseDecision(raw)
	if err != nil {
		logger.Errorf("router: failed to parse decision from %q: %v", raw, err)
		st.DataSource = schema.KindEnd
		return st.WithError("failed to parse the routing decision")
	}

	logger.Infof("router: decision=%s", decision)
	switch decision {
	case schema.KindClarify:
		st.DataSource = schema.KindClarify
		st.ClarificationNeeded = true
		st.ClarificationText = clarification
		st.QueryBeforeClarification = st.Query
		if st.ClarificationText == "" {
			st.ClarificationText = "Could you rephrase your question with more detail about what you are looking for?"
		}
	case schema.KindReject:
		st.DataSource = schema.KindReject
		st = st.WithError("query is not related to the available data sources")
	default:
		st.DataSource = decision
	}
	return st
}

// parseDecision pulls the structured decision out of raw model output. It
// first treats the whole output as JSON, then falls back to scanning for an
// embedded object; anything else is an extraction error.
func parseDecision(raw string) (schema.BackendKind, string, error) {
	candidate := strings.TrimSpace(llm.CleanPayload(raw))
	if !gjson.Valid(candidate) {
		embedded, ok := llm.ExtractJSONObject(raw)
		if !ok {
			return schema.KindUnknown, "", fmt.Errorf("no JSON object in model output")
		}
		candidate = embedded
	}

	label := gjson.Get(candidate, "data_source")
	if !label.Exists() {
		return schema.KindUnknown, "", fmt.Errorf("decision object missing data_source")
	}
	kind, err := schema.ParseKind(label.String())
	if err != nil {
		return schema.KindUnknown, "", err
	}
	return kind, gjson.Get(candidate, "clarification_question").String(), nil
}
