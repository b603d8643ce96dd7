package model

import "fmt"

// ModelError aborts model construction before the solver runs: the named
// course can never be placed under the hard constraints, so solving would
// only surface the problem as opaque infeasibility.
type ModelError struct {
	CourseID int
	Record   string // offending constraint record, when one is known
	Reason   string
}

func (e *ModelError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("model error on course %v under %v: %v", e.CourseID, e.Record, e.Reason)
	}
	return fmt.Sprintf("model error on course %v: %v", e.CourseID, e.Reason)
}
