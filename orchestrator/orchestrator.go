package orchestrator

import (
	"context"

	"github.com/askdb/askdb/common/logger"
	"github.com/askdb/askdb/schema"
)

// Stage interfaces, one per pipeline step. The orchestrator only sequences;
// all domain behavior lives behind these.
type (
	// Router classifies the question onto a data source.
	Router interface {
		Route(ctx context.Context, st schema.RunState) schema.RunState
	}
	// Generator produces the executable payload for the routed backend.
	Generator interface {
		Generate(ctx context.Context, st schema.RunState) schema.RunState
	}
	// Executor runs one payload against one backend.
	Executor interface {
		Execute(ctx context.Context, kind schema.BackendKind, payload string) schema.Outcome
	}
	// Refiner rewrites a payload that matched nothing.
	Refiner interface {
		Refine(ctx context.Context, st schema.RunState) schema.RunState
	}
	// Responder produces the user-facing answer from the final state.
	Responder interface {
		Respond(ctx context.Context, st schema.RunState) schema.RunState
	}
)

// phase is the orchestrator's position in one cycle.
type phase int

const (
	phaseRouting phase = iota
	phaseGenerating
	phaseExecuting
	phaseRefining
	phaseResponding
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseRouting:
		return "routing"
	case phaseGenerating:
		return "generating"
	case phaseExecuting:
		return "executing"
	case phaseRefining:
		return "refining"
	case phaseResponding:
		return "responding"
	case phaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Orchestrator sequences one question through
// routing -> generating -> executing -> (refining <-> executing) -> responding.
// The retry ceiling is enforced here, not in the refiner: whatever the refiner
// returns, no cycle executes more than schema.MaxExecutionAttempts payloads.
type Orchestrator struct {
	Router    Router
	Generator Generator
	Executor  Executor
	Refiner   Refiner
	Responder Responder
}

// New wires the stages into an orchestrator.
func New(router Router, generator Generator, executor Executor, refiner Refiner, responder Responder) *Orchestrator {
	return &Orchestrator{
		Router:    router,
		Generator: generator,
		Executor:  executor,
		Refiner:   refiner,
		Responder: responder,
	}
}

// Run drives one full cycle for the question and returns the terminal state.
// Response is populated on every path except clarification, where the front
// end reads ClarificationText and restarts with a merged question.
func (o *Orchestrator) Run(ctx context.Context, question string) schema.RunState {
	st := schema.NewRunState(question)
	logger.Infof("orchestrator: run %s started for %q", st.RunID, question)

	for p := phaseRouting; p != phaseDone; {
		logger.Debugf("orchestrator: run %s entering phase %s", st.RunID, p)
		switch p {
		case phaseRouting:
			st = o.Router.Route(ctx, st)
			switch {
			case st.DataSource == schema.KindClarify:
				// A clarification cycle ends here: the front end reads
				// ClarificationText and restarts, so Response stays unset.
				p = phaseDone
			case st.Terminal():
				p = phaseResponding
			default:
				p = phaseGenerating
			}

		case phaseGenerating:
			st = o.Generator.Generate(ctx, st)
			if st.Error != "" {
				p = phaseResponding
			} else {
				p = phaseExecuting
			}

		case phaseExecuting:
			st.AttemptCount++
			out := o.Executor.Execute(ctx, st.DataSource, st.GeneratedQuery)
			st.Context = out.Context
			switch out.Status {
			case schema.StatusData:
				st.Error = ""
				p = phaseResponding
			case schema.StatusError:
				// Hard errors are never retried; only a clean empty result
				// earns a refinement.
				st = st.WithError(out.Err)
				p = phaseResponding
			case schema.StatusEmpty:
				if st.AttemptCount < schema.MaxExecutionAttempts {
					st.NeedsRefinement = true
					st.LastFailedQuery = st.GeneratedQuery
					p = phaseRefining
				} else {
					st = st.WithError("no results found after query refinement")
					p = phaseResponding
				}
			}

		case phaseRefining:
			st = o.Refiner.Refine(ctx, st)
			p = phaseExecuting

		case phaseResponding:
			st = o.Responder.Respond(ctx, st)
			p = phaseDone
		}
	}

	logger.Infof("orchestrator: run %s finished, attempts=%d, error=%q",
		st.RunID, st.AttemptCount, st.Error)
	return st
}
