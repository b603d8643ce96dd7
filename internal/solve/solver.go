package solve

import (
	"time"

	"schoolsched/internal/model"
)

type Status int

const (
	// Optimal is a solution proven best under the objective
	Optimal Status = iota
	// Feasible is a valid solution whose optimality was not proven in time
	Feasible
	// Infeasible means no assignment satisfies the hard constraints
	Infeasible
	// Timeout means the budget expired before any feasible assignment
	Timeout
)

func (status Status) String() string {
	switch status {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	case Timeout:
		return "TIMEOUT_NO_SOLUTION"
	}
	return "UNKNOWN"
}

// Solved reports whether the result carries a usable assignment.
func (status Status) Solved() bool {
	return status == Optimal || status == Feasible
}

// Result is the outcome of one solver invocation. Assignment is indexed by
// variable (variable v at Assignment[v-1]) and is nil unless Status.Solved().
type Result struct {
	Status     Status
	Assignment []bool
	Cost       int
}

// Solver runs a built model under a hard wall-clock budget. Implementations
// must never block past the limit; there is no mid-search cancellation.
type Solver interface {
	Solve(m *model.Model, limit time.Duration) Result
}
