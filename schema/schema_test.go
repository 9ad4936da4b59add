package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		label string
		want  BackendKind
	}{
		{"relational", KindRelational},
		{"SQL", KindRelational},
		{"document", KindDocument},
		{"mongodb", KindDocument},
		{"search_index", KindSearchIndex},
		{"MeiliSearch", KindSearchIndex},
		{"graph", KindGraph},
		{"cypher", KindGraph},
		{"clarification_needed", KindClarify},
		{"reject", KindReject},
		{"general", KindReject},
	}
	for _, tt := range tests {
		kind, err := ParseKind(tt.label)
		require.NoError(t, err, "label %q", tt.label)
		assert.Equal(t, tt.want, kind, "label %q", tt.label)
	}

	_, err := ParseKind("blockchain")
	assert.Error(t, err)

	// "end" marks a routing failure, never a decision a model may emit.
	_, err = ParseKind("end")
	assert.Error(t, err)
}

func TestRoutable(t *testing.T) {
	for _, k := range []BackendKind{KindRelational, KindDocument, KindSearchIndex, KindGraph} {
		assert.True(t, k.Routable(), k.String())
	}
	for _, k := range []BackendKind{KindUnknown, KindClarify, KindReject, KindEnd} {
		assert.False(t, k.Routable(), k.String())
	}
}

func TestNewRunState(t *testing.T) {
	st := NewRunState("who works on billing?")
	assert.NotEmpty(t, st.RunID)
	assert.Equal(t, "who works on billing?", st.Query)
	assert.Equal(t, "who works on billing?", st.OriginalUserQuery)
	assert.Equal(t, KindUnknown, st.DataSource)
	assert.Zero(t, st.AttemptCount)
	assert.False(t, st.NeedsRefinement)
}

func TestMergeClarified(t *testing.T) {
	prior := NewRunState("tell me about the project")
	prior.DataSource = KindClarify
	prior.ClarificationNeeded = true
	prior.ClarificationText = "Which project do you mean?"
	prior.QueryBeforeClarification = prior.Query

	merged := MergeClarified(prior, "the Billing Revamp one")
	assert.Equal(t,
		"tell me about the project [User provided further detail: the Billing Revamp one]",
		merged.Query)
	assert.NotEqual(t, prior.RunID, merged.RunID)
	assert.False(t, merged.ClarificationNeeded)
	assert.Zero(t, merged.AttemptCount)
	assert.Equal(t, KindUnknown, merged.DataSource)
}

func TestMergeClarifiedFallsBackToOriginalQuery(t *testing.T) {
	prior := RunState{OriginalUserQuery: "what about tickets"}
	merged := MergeClarified(prior, "the open ones")
	assert.Equal(t, "what about tickets [User provided further detail: the open ones]", merged.Query)
}

func TestWithErrorPreservesFirst(t *testing.T) {
	st := NewRunState("q").WithError("first failure")
	st = st.WithError("second failure")
	assert.Equal(t, "first failure", st.Error)
}

func TestOutcomes(t *testing.T) {
	data := DataOutcome("1. name: Priya Sharma")
	assert.Equal(t, StatusData, data.Status)

	empty := EmptyOutcome()
	assert.Equal(t, StatusEmpty, empty.Status)
	assert.Equal(t, EmptyResultMarker, empty.Context)

	errOut := ErrorOutcome("connection refused")
	assert.Equal(t, StatusError, errOut.Status)
	assert.Equal(t, "An error occurred: connection refused", errOut.Context)
	assert.Equal(t, "connection refused", errOut.Err)
}
