package schema

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxExecutionAttempts bounds the refinement loop: one original execution plus
// at most one refinement. Enforced by the orchestrator, not the refiner.
const MaxExecutionAttempts = 2

// RunState is the record threaded through one cycle of the pipeline. Stages
// take the current value and return a new one; nothing mutates shared memory,
// which keeps the retry loop resumable and trivially testable.
type RunState struct {
	RunID string `json:"run_id"`

	// Query is the question currently being routed. It is replaced wholesale
	// when a clarification round starts a new cycle.
	Query string `json:"query"`
	// OriginalUserQuery is the very first question asked, preserved across
	// the cycle for answer grounding. Set once at construction.
	OriginalUserQuery string `json:"original_user_query"`

	// DataSource is the routing decision. Set exactly once per cycle.
	DataSource BackendKind `json:"data_source"`

	// GeneratedQuery is the current payload for the active backend;
	// refinement overwrites it.
	GeneratedQuery string `json:"generated_query"`
	// InitialGeneratedQuery keeps the first payload of the cycle for
	// diagnostics even after refinement overwrites GeneratedQuery.
	InitialGeneratedQuery string `json:"initial_generated_query"`
	// LastFailedQuery is the payload that matched nothing, handed to the
	// refiner. Cleared once a refinement is produced.
	LastFailedQuery string `json:"last_failed_query"`

	// Context is the normalized result of the last execution attempt: real
	// data, the empty marker, or an error-annotated string.
	Context string `json:"context"`

	// NeedsRefinement is true only when the last execution matched nothing
	// and the attempt budget is not exhausted.
	NeedsRefinement bool `json:"needs_query_refinement"`
	// AttemptCount is incremented once per execution attempt, not per
	// refinement. Invariant: AttemptCount <= MaxExecutionAttempts.
	AttemptCount int `json:"refinement_attempt_count"`

	// Error carries the first unrecovered failure as a plain string. Stages
	// downstream of execution check it explicitly instead of raising.
	Error string `json:"error,omitempty"`

	// Clarification fields are populated only on the clarify path and are
	// consumed by the front end that re-prompts the user.
	ClarificationNeeded      bool   `json:"clarification_question_needed"`
	ClarificationText        string `json:"clarification_question_text,omitempty"`
	QueryBeforeClarification string `json:"original_query_before_clarification,omitempty"`

	// Response is the final answer text, the only field the caller reads.
	Response string `json:"response,omitempty"`
}

// NewRunState builds a fresh record for one user question with all transient
// fields at their zero defaults.
func NewRunState(question string) RunState {
	return RunState{
		RunID:             uuid.NewString(),
		Query:             question,
		OriginalUserQuery: question,
	}
}

// MergeClarified starts the follow-up cycle after a clarification round. The
// new query is the pre-clarification question concatenated with the user's
// clarifying input; every transient field resets to its default.
func MergeClarified(st RunState, clarification string) RunState {
	base := st.QueryBeforeClarification
	if base == "" {
		base = st.OriginalUserQuery
	}
	merged := fmt.Sprintf("%s [User provided further detail: %s]", base, clarification)
	return NewRunState(merged)
}

// WithError returns a copy with the error recorded, preserving any earlier
// error already set.
func (st RunState) WithError(msg string) RunState {
	if st.Error == "" {
		st.Error = msg
	}
	return st
}

// Terminal reports whether routing decided the cycle ends without execution.
func (st RunState) Terminal() bool {
	switch st.DataSource {
	case KindClarify, KindReject, KindEnd:
		return true
	default:
		return false
	}
}
