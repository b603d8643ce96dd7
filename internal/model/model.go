package model

import "github.com/crillab/gophersat/solver"

// Weights scale the objective terms. They are configuration, not structure;
// a zero weight removes the term's influence without changing the encoding.
type Weights struct {
	Gap     int // within-day hole between two occupied periods of a class
	Balance int // occupied period above a class's daily target load
	Block   int // missing same-course adjacency, or a run past the max block
	Soft    int // base weight of a violated soft constraint record
}

// Config carries the structural knobs of the encoding.
type Config struct {
	PriorityCutoff int // records with priority <= cutoff are hard
	BlockMin       int // preferred contiguous run, lower bound
	BlockMax       int // preferred contiguous run, upper bound
}

// Term is one weighted objective literal. The model's cost is the weight
// sum of satisfied terms, and the solver minimizes it.
type Term struct {
	Lit    int
	Weight int
}

// Model is a pseudo-boolean instance plus the bookkeeping needed to read a
// solution back. One Model serves exactly one solve; concurrent runs build
// their own.
type Model struct {
	Variables int // total variable count, decisions and auxiliaries
	Constrs   []solver.PBConstr
	Objective []Term
	Indexer   Indexer
}

// Cost evaluates the objective over a solver assignment.
func (m *Model) Cost(assignment []bool) int {
	cost := 0
	for _, term := range m.Objective {
		if LitTrue(assignment, term.Lit) {
			cost += term.Weight
		}
	}
	return cost
}

// Bound returns a constraint forcing the objective strictly under the
// incumbent: cost <= maxCost, expressed over negated objective literals so
// all pseudo-boolean weights stay positive.
func (m *Model) Bound(maxCost int) solver.PBConstr {
	lits := make([]int, len(m.Objective))
	weights := make([]int, len(m.Objective))
	total := 0
	for i, term := range m.Objective {
		lits[i] = -term.Lit
		weights[i] = term.Weight
		total += term.Weight
	}
	return solver.GtEq(lits, weights, total-maxCost)
}

// LitTrue reports whether the assignment satisfies the literal. Variables
// beyond the assignment are treated as false.
func LitTrue(assignment []bool, lit int) bool {
	variable := lit
	if variable < 0 {
		variable = -variable
	}
	value := variable-1 < len(assignment) && assignment[variable-1]
	if lit < 0 {
		return !value
	}
	return value
}
