package schema

// EmptyResultMarker is the canonical context value for a query that reached
// its backend but matched nothing. The responder is instructed to report it
// verbatim as "not found" rather than inventing an answer.
const EmptyResultMarker = "No records found matching the query."

// OutcomeStatus is the three-way classification of one execution attempt.
type OutcomeStatus int

const (
	// StatusData means the backend returned at least one record.
	StatusData OutcomeStatus = iota
	// StatusEmpty means the backend was reached and matched zero records.
	// Distinguished from StatusError: only Empty is eligible for refinement.
	StatusEmpty
	// StatusError means the backend was unreachable, the payload was
	// malformed for it, or the driver raised. Never retried.
	StatusError
)

func (s OutcomeStatus) String() string {
	switch s {
	case StatusData:
		return "data"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the normalized result of executing one payload against one
// backend. Adapters never raise past their boundary; every failure is folded
// into an Error outcome so the orchestrator can apply uniform policy.
type Outcome struct {
	Status  OutcomeStatus
	Context string // retrieved data, the empty marker, or an error-annotated string
	Err     string // set only when Status == StatusError
}

// DataOutcome wraps a non-empty formatted result set.
func DataOutcome(context string) Outcome {
	return Outcome{Status: StatusData, Context: context}
}

// EmptyOutcome is the zero-match outcome with the canonical marker.
func EmptyOutcome() Outcome {
	return Outcome{Status: StatusEmpty, Context: EmptyResultMarker}
}

// ErrorOutcome wraps a backend failure message.
func ErrorOutcome(msg string) Outcome {
	return Outcome{Status: StatusError, Context: "An error occurred: " + msg, Err: msg}
}
