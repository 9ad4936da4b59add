package schema

import (
	"fmt"
	"strings"
)

// BackendKind identifies the data source a question is routed to. The set is
// closed: every dispatch point switches exhaustively over these values so that
// adding a backend is a compile-time extension rather than a string comparison.
type BackendKind int

const (
	// KindUnknown is the zero value, before routing has run.
	KindUnknown BackendKind = iota
	// KindRelational targets the SQL database (employees, projects).
	KindRelational
	// KindDocument targets the document store (research papers).
	KindDocument
	// KindSearchIndex targets the full-text search index (support tickets).
	KindSearchIndex
	// KindGraph targets the graph database (researcher collaborations).
	KindGraph
	// KindClarify means the question was too vague to route; the cycle ends
	// with a follow-up question for the user.
	KindClarify
	// KindReject means the question is off-domain and gets no answer.
	KindReject
	// KindEnd terminates the cycle without an answer, typically after a
	// routing failure.
	KindEnd
)

// Routable reports whether the kind names an executable backend.
func (k BackendKind) Routable() bool {
	switch k {
	case KindRelational, KindDocument, KindSearchIndex, KindGraph:
		return true
	default:
		return false
	}
}

func (k BackendKind) String() string {
	switch k {
	case KindRelational:
		return "relational"
	case KindDocument:
		return "document"
	case KindSearchIndex:
		return "search_index"
	case KindGraph:
		return "graph"
	case KindClarify:
		return "clarification_needed"
	case KindReject:
		return "reject"
	case KindEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ParseKind maps a classifier label to a BackendKind. Labels are matched
// case-insensitively; a handful of aliases cover the names the model tends to
// emit for each category. "end" is never a valid label: it is assigned only
// on routing failure, so a model emitting it is off-contract.
func ParseKind(label string) (BackendKind, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "relational", "sql", "sqlite":
		return KindRelational, nil
	case "document", "mongodb", "documents":
		return KindDocument, nil
	case "search_index", "search", "meilisearch", "fulltext":
		return KindSearchIndex, nil
	case "graph", "neo4j", "cypher":
		return KindGraph, nil
	case "clarification_needed", "clarify", "clarification":
		return KindClarify, nil
	case "reject", "general", "none":
		return KindReject, nil
	default:
		return KindUnknown, fmt.Errorf("unrecognized data source label %q", label)
	}
}
