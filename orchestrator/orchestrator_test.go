package orchestrator

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/askdb/askdb/common/logger"
	"github.com/askdb/askdb/responder"
	"github.com/askdb/askdb/schema"
)

func TestMain(m *testing.M) {
	restore := logger.Replace(zap.NewNop())
	code := m.Run()
	restore()
	os.Exit(code)
}

// Stub stages, scriptable per test.

type stubRouter struct {
	kind          schema.BackendKind
	clarification string
	errText       string
}

func (s stubRouter) Route(ctx context.Context, st schema.RunState) schema.RunState {
	st.DataSource = s.kind
	if s.kind == schema.KindClarify {
		st.ClarificationNeeded = true
		st.ClarificationText = s.clarification
		st.QueryBeforeClarification = st.Query
	}
	if s.errText != "" {
		st = st.WithError(s.errText)
	}
	return st
}

type stubGenerator struct {
	payload string
	calls   int
}

func (s *stubGenerator) Generate(ctx context.Context, st schema.RunState) schema.RunState {
	s.calls++
	st.GeneratedQuery = s.payload
	if st.InitialGeneratedQuery == "" {
		st.InitialGeneratedQuery = s.payload
	}
	return st
}

// stubExecutor returns its scripted outcomes in order, recording the payload
// each attempt executed.
type stubExecutor struct {
	outcomes []schema.Outcome
	payloads []string
}

func (s *stubExecutor) Execute(ctx context.Context, kind schema.BackendKind, payload string) schema.Outcome {
	s.payloads = append(s.payloads, payload)
	out := s.outcomes[0]
	if len(s.outcomes) > 1 {
		s.outcomes = s.outcomes[1:]
	}
	return out
}

type stubRefiner struct {
	refined string
	calls   int
}

func (s *stubRefiner) Refine(ctx context.Context, st schema.RunState) schema.RunState {
	s.calls++
	if s.refined != "" {
		st.GeneratedQuery = s.refined
	}
	st.LastFailedQuery = ""
	st.NeedsRefinement = false
	return st
}

// echoResponder records the state it saw and answers from it without a model.
type echoResponder struct {
	seen  schema.RunState
	calls int
}

func (s *echoResponder) Respond(ctx context.Context, st schema.RunState) schema.RunState {
	s.seen = st
	s.calls++
	switch {
	case st.Error != "":
		st.Response = "error: " + st.Error
	default:
		st.Response = "answer from: " + st.Context
	}
	return st
}

func TestRunAnswersOnFirstAttempt(t *testing.T) {
	gen := &stubGenerator{payload: "SELECT name FROM employees"}
	exec := &stubExecutor{outcomes: []schema.Outcome{schema.DataOutcome("1. name: Priya Sharma")}}
	ref := &stubRefiner{}
	resp := &echoResponder{}

	o := New(stubRouter{kind: schema.KindRelational}, gen, exec, ref, resp)
	st := o.Run(context.Background(), "who is in engineering?")

	assert.Equal(t, "answer from: 1. name: Priya Sharma", st.Response)
	assert.Equal(t, 1, st.AttemptCount)
	assert.Zero(t, ref.calls)
	assert.False(t, st.NeedsRefinement)
	assert.Empty(t, st.Error)
}

func TestRunRefinesOnceThenAcceptsEmpty(t *testing.T) {
	gen := &stubGenerator{payload: `{"topic": "Quantum Teleportation"}`}
	exec := &stubExecutor{outcomes: []schema.Outcome{schema.EmptyOutcome(), schema.EmptyOutcome()}}
	ref := &stubRefiner{refined: `{"topic": {"$regex": "teleport", "$options": "i"}}`}
	resp := &echoResponder{}

	o := New(stubRouter{kind: schema.KindDocument}, gen, exec, ref, resp)
	st := o.Run(context.Background(), "find papers about quantum teleportation")

	assert.Equal(t, schema.MaxExecutionAttempts, st.AttemptCount)
	assert.Equal(t, 1, ref.calls)
	require.Len(t, exec.payloads, 2)
	assert.Equal(t, `{"topic": "Quantum Teleportation"}`, exec.payloads[0])
	assert.Equal(t, `{"topic": {"$regex": "teleport", "$options": "i"}}`, exec.payloads[1])
	assert.Equal(t, schema.EmptyResultMarker, st.Context)
	assert.Contains(t, st.Error, "no results")
	assert.False(t, st.NeedsRefinement)
	assert.Equal(t, `{"topic": "Quantum Teleportation"}`, st.InitialGeneratedQuery)
}

func TestRunRefinementRecovers(t *testing.T) {
	gen := &stubGenerator{payload: "ticket RAG"}
	exec := &stubExecutor{outcomes: []schema.Outcome{
		schema.EmptyOutcome(),
		schema.DataOutcome("1. ticket_id: TCK-1001"),
	}}
	ref := &stubRefiner{refined: "ticket retrieval augmented generation"}
	resp := &echoResponder{}

	o := New(stubRouter{kind: schema.KindSearchIndex}, gen, exec, ref, resp)
	st := o.Run(context.Background(), "any tickets about RAG?")

	assert.Equal(t, 2, st.AttemptCount)
	assert.Equal(t, 1, ref.calls)
	assert.Empty(t, st.Error)
	assert.Equal(t, "answer from: 1. ticket_id: TCK-1001", st.Response)
}

func TestRunNeverRefinesHardErrors(t *testing.T) {
	gen := &stubGenerator{payload: "MATCH (n) RETURN n"}
	exec := &stubExecutor{outcomes: []schema.Outcome{
		schema.ErrorOutcome("connection refused"),
	}}
	ref := &stubRefiner{}
	resp := &echoResponder{}

	o := New(stubRouter{kind: schema.KindGraph}, gen, exec, ref, resp)
	st := o.Run(context.Background(), "who collaborates with Elena?")

	assert.Equal(t, 1, st.AttemptCount)
	assert.Zero(t, ref.calls)
	assert.False(t, st.NeedsRefinement)
	assert.Contains(t, st.Error, "connection refused")
	assert.Contains(t, st.Response, "connection refused")
}

func TestRunClarificationShortCircuits(t *testing.T) {
	gen := &stubGenerator{}
	exec := &stubExecutor{outcomes: []schema.Outcome{schema.DataOutcome("unused")}}
	ref := &stubRefiner{}
	resp := &echoResponder{}

	o := New(stubRouter{kind: schema.KindClarify, clarification: "Which project?"}, gen, exec, ref, resp)
	st := o.Run(context.Background(), "tell me about the project")

	assert.True(t, st.ClarificationNeeded)
	assert.Equal(t, "Which project?", st.ClarificationText)
	assert.Empty(t, st.Response)
	assert.Zero(t, resp.calls)
	assert.Zero(t, gen.calls)
	assert.Zero(t, st.AttemptCount)
}

func TestRunClarificationLeavesResponseUnsetWithRealResponder(t *testing.T) {
	gen := &stubGenerator{}
	exec := &stubExecutor{outcomes: []schema.Outcome{schema.DataOutcome("unused")}}
	ref := &stubRefiner{}
	resp := responder.New(&failingProvider{}, 0)

	o := New(stubRouter{kind: schema.KindClarify, clarification: "Which project?"}, gen, exec, ref, resp)
	st := o.Run(context.Background(), "tell me about the project")

	assert.True(t, st.ClarificationNeeded)
	assert.Equal(t, "Which project?", st.ClarificationText)
	assert.Empty(t, st.Response)
}

// failingProvider errors on every call, proving no synthesis happened.
type failingProvider struct{}

func (failingProvider) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("must not be called")
}

func (failingProvider) GetProviderType() string { return "mock" }

func TestRunRejectShortCircuits(t *testing.T) {
	gen := &stubGenerator{}
	exec := &stubExecutor{outcomes: []schema.Outcome{schema.DataOutcome("unused")}}
	resp := &echoResponder{}

	o := New(stubRouter{kind: schema.KindReject, errText: "query is not related to the available data sources"},
		gen, exec, &stubRefiner{}, resp)
	st := o.Run(context.Background(), "what's the weather like?")

	assert.Zero(t, gen.calls)
	assert.Zero(t, st.AttemptCount)
	assert.Contains(t, st.Response, "not related")
}

func TestRunAttemptCountNeverExceedsCeiling(t *testing.T) {
	// A refiner that keeps demanding retries must still be capped.
	gen := &stubGenerator{payload: "q"}
	exec := &stubExecutor{outcomes: []schema.Outcome{schema.EmptyOutcome()}}
	ref := &stubRefiner{refined: "q2"}
	resp := &echoResponder{}

	o := New(stubRouter{kind: schema.KindRelational}, gen, exec, ref, resp)
	st := o.Run(context.Background(), "anything?")

	assert.LessOrEqual(t, st.AttemptCount, schema.MaxExecutionAttempts)
	assert.Equal(t, 1, ref.calls)
}
