package solve

import (
	"slices"
	"time"

	"github.com/crillab/gophersat/solver"
	"go.uber.org/zap"

	"schoolsched/internal/model"
)

type gophersatSolver struct {
	logger *zap.Logger
}

// NewGophersatSolver returns the in-process pseudo-boolean backend.
// Optimization is a descending-cost loop: each incumbent tightens a bound
// on the objective until the instance turns unsatisfiable (incumbent proven
// optimal) or the budget runs out.
func NewGophersatSolver(logger *zap.Logger) Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gophersatSolver{logger: logger}
}

func (backend *gophersatSolver) Solve(m *model.Model, limit time.Duration) Result {
	deadline := time.Now().Add(limit)
	constrs := slices.Clone(m.Constrs)

	var best []bool
	bestCost := 0

	for {
		status, assignment := solveOnce(constrs, deadline)

		switch status {
		case solver.Unsat:
			if best == nil {
				return Result{Status: Infeasible}
			}
			// No assignment beats the incumbent
			return Result{Status: Optimal, Assignment: best, Cost: bestCost}

		case solver.Indet:
			if best == nil {
				return Result{Status: Timeout}
			}
			return Result{Status: Feasible, Assignment: best, Cost: bestCost}
		}

		best = assignment
		bestCost = m.Cost(assignment)
		backend.logger.Debug("incumbent found", zap.Int("cost", bestCost))

		if bestCost == 0 {
			return Result{Status: Optimal, Assignment: best, Cost: 0}
		}
		constrs = append(constrs, m.Bound(bestCost-1))
	}
}

// solveOnce runs one satisfiability call, abandoning the search goroutine
// once the deadline passes. gophersat exposes no cancellation hook, so the
// stray goroutine is left to finish on its own.
func solveOnce(constrs []solver.PBConstr, deadline time.Time) (solver.Status, []bool) {
	type outcome struct {
		status     solver.Status
		assignment []bool
	}

	remaining := time.Until(deadline)
	if remaining <= 0 {
		return solver.Indet, nil
	}

	done := make(chan outcome, 1)
	go func() {
		s := solver.New(solver.ParsePBConstrs(constrs))
		status := s.Solve()

		var assignment []bool
		if status == solver.Sat {
			assignment = s.Model()
		}
		done <- outcome{status: status, assignment: assignment}
	}()

	select {
	case result := <-done:
		return result.status, result.assignment
	case <-time.After(remaining):
		return solver.Indet, nil
	}
}
