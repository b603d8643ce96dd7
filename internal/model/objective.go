package model

import (
	"slices"

	"github.com/crillab/gophersat/solver"
	"github.com/samber/lo"

	"schoolsched/internal/sched"
)

// occKey addresses one class's occupancy of one grid cell.
type occKey struct {
	class  string
	day    int
	period int
}

// buildObjective encodes the soft timetable-quality terms: within-day gaps,
// daily overload past the class's target, and course-block shape. Families
// with a zero weight are skipped entirely.
func (builder *pbBuilder) buildObjective() {
	if builder.weights.Gap > 0 || builder.weights.Balance > 0 {
		occupancy := builder.occupancyVariables()
		builder.gapPenalties(occupancy)
		builder.balancePenalties(occupancy)
	}
	builder.blockTerms()
}

// occupancyVariables defines one auxiliary per (class, day, period) equal to
// "some course of the class sits here". Both implication directions are
// required: a free occupancy literal could silently fill a gap.
func (builder *pbBuilder) occupancyVariables() map[occKey]int {
	occupancy := make(map[occKey]int)

	for _, class := range sched.ClassUniverse(builder.courses) {
		for slot := range builder.slots {
			lits := make([]int, 0)
			for course := range builder.courses {
				if builder.courses[course].Covers(class) && builder.eligibility.Eligible(course, slot) {
					lits = append(lits, builder.indexer.Index(course, slot))
				}
			}
			if len(lits) == 0 {
				continue
			}

			occupied := builder.aux()
			for _, lit := range lits {
				builder.constrs = append(builder.constrs, solver.PropClause(-lit, occupied))
			}
			builder.constrs = append(builder.constrs, solver.PropClause(append([]int{-occupied}, lits...)...))

			occupancy[occKey{class: class, day: builder.slots[slot].Day, period: builder.slots[slot].Period}] = occupied
		}
	}

	return occupancy
}

// gapPenalties charges one weighted literal per empty period squeezed
// between two occupied periods of the same class-day. Reachability chains
// ("occupied somewhere before", "occupied somewhere after") keep the
// encoding linear in the period count.
func (builder *pbBuilder) gapPenalties(occupancy map[occKey]int) {
	if builder.weights.Gap == 0 {
		return
	}

	for _, class := range sched.ClassUniverse(builder.courses) {
		for _, day := range builder.schoolDays() {
			periods := builder.dayPeriods(day)

			before := builder.reachabilityChain(occupancy, class, day, periods)
			slices.Reverse(periods)
			after := builder.reachabilityChain(occupancy, class, day, periods)
			slices.Reverse(periods)

			for _, period := range periods {
				if before[period] == 0 || after[period] == 0 {
					continue
				}

				gap := builder.aux()
				clause := []int{-before[period], -after[period], gap}
				if occupied := occupancy[occKey{class: class, day: day, period: period}]; occupied != 0 {
					clause = []int{-before[period], -after[period], occupied, gap}
				}
				builder.constrs = append(builder.constrs, solver.PropClause(clause...))
				builder.objective = append(builder.objective, Term{Lit: gap, Weight: builder.weights.Gap})
			}
		}
	}
}

// reachabilityChain returns, per period, a literal that must rise whenever
// an earlier period (in the given walk order) is occupied. A zero entry
// means no earlier period can be occupied at all.
func (builder *pbBuilder) reachabilityChain(occupancy map[occKey]int, class string, day int, periods []int) map[int]int {
	chain := make(map[int]int)

	previousOccupied, previousChain := 0, 0
	for _, period := range periods {
		if previousOccupied != 0 || previousChain != 0 {
			reached := builder.aux()
			if previousOccupied != 0 {
				builder.constrs = append(builder.constrs, solver.PropClause(-previousOccupied, reached))
			}
			if previousChain != 0 {
				builder.constrs = append(builder.constrs, solver.PropClause(-previousChain, reached))
			}
			chain[period] = reached
		}

		previousOccupied = occupancy[occKey{class: class, day: day, period: period}]
		previousChain = chain[period]
	}

	return chain
}

// balancePenalties charges every occupied period past the class's daily
// target (weekly load spread evenly over school days, rounded up). The
// post-hoc analyzer reports true variance; the model only needs a linear
// term pushing in the same direction.
func (builder *pbBuilder) balancePenalties(occupancy map[occKey]int) {
	if builder.weights.Balance == 0 {
		return
	}

	days := builder.schoolDays()
	for _, class := range sched.ClassUniverse(builder.courses) {
		total := lo.SumBy(builder.courses, func(course sched.Course) int {
			if course.Covers(class) {
				return course.WeeklyHours
			}
			return 0
		})
		target := (total + len(days) - 1) / len(days)

		for _, day := range days {
			lits := make([]int, 0)
			for _, period := range builder.dayPeriods(day) {
				if occupied := occupancy[occKey{class: class, day: day, period: period}]; occupied != 0 {
					lits = append(lits, occupied)
				}
			}
			if len(lits) > target {
				builder.overloadTerms(lits, target, builder.weights.Balance)
			}
		}
	}
}

// blockTerms rewards contiguous same-course runs by charging every missing
// adjacency, and charges runs that outgrow the configured maximum block.
func (builder *pbBuilder) blockTerms() {
	if builder.weights.Block == 0 {
		return
	}

	if builder.config.BlockMin >= 2 {
		for course := range builder.courses {
			if builder.courses[course].WeeklyHours < 2 {
				continue
			}
			builder.adjacencyTerms(course)
		}
	}

	if builder.config.BlockMax >= 1 {
		for course := range builder.courses {
			if builder.courses[course].WeeklyHours > builder.config.BlockMax {
				builder.overlongTerms(course)
			}
		}
	}
}

func (builder *pbBuilder) adjacencyTerms(course int) {
	for _, day := range builder.schoolDays() {
		periods := builder.dayPeriods(day)

		for i := 0; i+1 < len(periods); i++ {
			if periods[i+1] != periods[i]+1 {
				continue
			}
			slot1, slot2 := builder.slotAt(day, periods[i]), builder.slotAt(day, periods[i+1])
			if !builder.eligibility.Eligible(course, slot1) || !builder.eligibility.Eligible(course, slot2) {
				continue
			}

			decision1 := builder.indexer.Index(course, slot1)
			decision2 := builder.indexer.Index(course, slot2)

			adjacent := builder.aux()
			builder.constrs = append(builder.constrs,
				solver.PropClause(-adjacent, decision1),
				solver.PropClause(-adjacent, decision2),
				solver.PropClause(-decision1, -decision2, adjacent),
			)
			builder.objective = append(builder.objective, Term{Lit: -adjacent, Weight: builder.weights.Block})
		}
	}
}

func (builder *pbBuilder) overlongTerms(course int) {
	window := builder.config.BlockMax + 1
	for _, day := range builder.schoolDays() {
		periods := builder.dayPeriods(day)

		for start := 0; start+window <= len(periods); start++ {
			run := periods[start : start+window]
			if run[len(run)-1]-run[0] != window-1 {
				continue // the window crosses a hole in the grid
			}

			clause := lo.Map(run, func(period, _ int) int {
				return -builder.indexer.Index(course, builder.slotAt(day, period))
			})
			long := builder.aux()
			builder.constrs = append(builder.constrs, solver.PropClause(append(clause, long)...))
			builder.objective = append(builder.objective, Term{Lit: long, Weight: builder.weights.Block})
		}
	}
}

// dayPeriods lists the grid's periods of one day, ascending.
func (builder *pbBuilder) dayPeriods(day int) []int {
	periods := make([]int, 0)
	for _, slot := range builder.slots {
		if slot.Day == day {
			periods = append(periods, slot.Period)
		}
	}
	slices.Sort(periods)
	return periods
}

// slotAt returns the position of the (day, period) cell; the grid is built
// dense per day, so a linear scan stays correct for any slot ordering.
func (builder *pbBuilder) slotAt(day, period int) int {
	for position, slot := range builder.slots {
		if slot.Day == day && slot.Period == period {
			return position
		}
	}
	return -1
}
