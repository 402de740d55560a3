package ingest

import "scribe/internal/classify"

// Outcome is the terminal state of one artifact-processing attempt.
type Outcome string

const (
	// OutcomePersisted means the artifact's rows were committed.
	OutcomePersisted Outcome = "persisted"
	// OutcomeSkipped means the artifact was intentionally not persisted
	// (duplicate, missing reference, unrecognized kind). Expected
	// steady-state, not an error.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means processing hit an error; the artifact stays
	// unprocessed where retrying can help.
	OutcomeFailed Outcome = "failed"
)

// Result reports how a single artifact was handled during a tick. The loop
// aggregates Results instead of signalling through raised errors.
type Result struct {
	File    string
	Kind    classify.Kind
	Outcome Outcome
	Reason  string
	Rows    int
	Err     error
}

// TickSummary aggregates the results of one polling tick.
type TickSummary struct {
	Persisted int
	Skipped   int
	Failed    int
	Rows      int
}

func (s *TickSummary) observe(r Result) {
	switch r.Outcome {
	case OutcomePersisted:
		s.Persisted++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
	s.Rows += r.Rows
}

// Total returns the number of artifacts handled in the tick.
func (s TickSummary) Total() int {
	return s.Persisted + s.Skipped + s.Failed
}
