package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/crillab/gophersat/solver"
	"github.com/samber/lo"

	"schoolsched/internal/sched"
)

type pbBuilder struct {
	//** Dependencies
	eligibility Eligibility
	indexer     Indexer

	courses []sched.Course
	slots   []sched.Slot
	weights Weights
	config  Config

	groups map[string][]int // sync group id -> member course positions, ascending

	nextVar   int
	constrs   []solver.PBConstr
	objective []Term
}

// Build allocates one boolean decision per (course, slot) pair and encodes
// the hard constraints plus the weighted objective. Courses and slots keep
// their input order, so variable numbering is reproducible run to run.
func Build(
	courses []sched.Course,
	slots []sched.Slot,
	records []sched.ConstraintRecord,
	weights Weights,
	config Config,
) (*Model, error) {

	if len(courses) == 0 {
		return nil, fmt.Errorf("cannot build model without courses")
	} else if len(slots) == 0 {
		return nil, fmt.Errorf("cannot build model without slots")
	}

	hard := lo.Filter(records, func(record sched.ConstraintRecord, _ int) bool {
		return record.Priority <= config.PriorityCutoff
	})
	soft := lo.Filter(records, func(record sched.ConstraintRecord, _ int) bool {
		return record.Priority > config.PriorityCutoff
	})

	eligibility, err := NewEligibility(courses, slots, hard)
	if err != nil {
		return nil, err
	}

	builder := &pbBuilder{
		eligibility: eligibility,
		indexer:     NewIndexer(len(courses), len(slots)),
		courses:     courses,
		slots:       slots,
		weights:     weights,
		config:      config,
		groups:      sched.BuildSyncGroups(courses),
		constrs:     []solver.PBConstr{},
		objective:   []Term{},
	}
	builder.nextVar = builder.indexer.Decisions() + 1

	if err := builder.checkPlaceability(); err != nil {
		return nil, err
	}

	builder.ineligibleFixations()
	builder.hoursConstraints()
	builder.classClashConstraints()
	builder.teacherClashConstraints()
	if err := builder.syncGroupConstraints(); err != nil {
		return nil, err
	}
	if err := builder.dailyLimitConstraints(hard, true); err != nil {
		return nil, err
	}
	if err := builder.dailyLimitConstraints(soft, false); err != nil {
		return nil, err
	}
	if err := builder.softExclusionPenalties(soft); err != nil {
		return nil, err
	}
	builder.buildObjective()

	return &Model{
		Variables: builder.nextVar - 1,
		Constrs:   builder.constrs,
		Objective: builder.objective,
		Indexer:   builder.indexer,
	}, nil
}

// aux allocates one auxiliary variable above the decision block.
func (builder *pbBuilder) aux() int {
	variable := builder.nextVar
	builder.nextVar++
	return variable
}

// checkPlaceability surfaces courses that can never be placed before the
// solver runs, instead of letting them show up as opaque infeasibility.
func (builder *pbBuilder) checkPlaceability() error {
	for course := range builder.courses {
		eligible := builder.eligibility.EligibleSlots(course)
		blockers := strings.Join(builder.eligibility.Blockers(course), ", ")

		if len(eligible) == 0 {
			return &ModelError{
				CourseID: builder.courses[course].ID,
				Record:   blockers,
				Reason:   "no eligible slot remains",
			}
		} else if len(eligible) < builder.courses[course].WeeklyHours {
			return &ModelError{
				CourseID: builder.courses[course].ID,
				Record:   blockers,
				Reason:   fmt.Sprintf("%v weekly hours exceed %v eligible slots", builder.courses[course].WeeklyHours, len(eligible)),
			}
		}
	}
	return nil
}

// ineligibleFixations forces every excluded (course, slot) decision to
// false, so ineligible variables can never leak into a solution.
func (builder *pbBuilder) ineligibleFixations() {
	for course := range builder.courses {
		for slot := range builder.slots {
			if !builder.eligibility.Eligible(course, slot) {
				builder.constrs = append(builder.constrs, solver.PropClause(-builder.indexer.Index(course, slot)))
			}
		}
	}
}

// hoursConstraints ties every course to exactly its weekly hours.
func (builder *pbBuilder) hoursConstraints() {
	for course := range builder.courses {
		lits := lo.Map(builder.eligibility.EligibleSlots(course), func(slot, _ int) int {
			return builder.indexer.Index(course, slot)
		})
		hours := builder.courses[course].WeeklyHours

		builder.constrs = append(builder.constrs,
			solver.AtLeast(lits, hours),
			solver.AtMost(lits, hours),
		)
	}
}

func (builder *pbBuilder) classClashConstraints() {
	builder.clashConstraints(func(course1, course2 sched.Course) bool {
		return lo.Some(course1.Classes, course2.Classes)
	})
}

func (builder *pbBuilder) teacherClashConstraints() {
	builder.clashConstraints(func(course1, course2 sched.Course) bool {
		return lo.Some(course1.Teachers, course2.Teachers)
	})
}

// clashConstraints forbids two overlapping courses from sharing a slot.
// Members of one sync group are exempt: their co-occurrence is the
// rendezvous the group exists for.
func (builder *pbBuilder) clashConstraints(overlaps func(course1, course2 sched.Course) bool) {
	for i := range len(builder.courses) - 1 {
		for j := i + 1; j < len(builder.courses); j++ {
			course1, course2 := builder.courses[i], builder.courses[j]

			if sameSyncGroup(course1, course2) || !overlaps(course1, course2) {
				continue
			}

			for slot := range builder.slots {
				if !builder.eligibility.Eligible(i, slot) || !builder.eligibility.Eligible(j, slot) {
					continue
				}
				builder.constrs = append(builder.constrs, solver.PropClause(
					-builder.indexer.Index(i, slot),
					-builder.indexer.Index(j, slot),
				))
			}
		}
	}
}

// syncGroupConstraints introduces one "group active at slot" variable per
// slot every member may use, links every member decision to it, and pins
// the active-slot count to the shared weekly hours. Either all members
// occupy a slot or none do.
func (builder *pbBuilder) syncGroupConstraints() error {
	groupIDs := lo.Keys(builder.groups)
	slices.Sort(groupIDs)

	for _, groupID := range groupIDs {
		members := builder.groups[groupID]
		if len(members) < 2 {
			// A single record spanning multiple classes already co-occurs
			// through its one decision variable per slot
			continue
		}

		hours := builder.courses[members[0]].WeeklyHours
		for _, member := range members[1:] {
			if builder.courses[member].WeeklyHours != hours {
				return &ModelError{
					CourseID: builder.courses[member].ID,
					Reason:   fmt.Sprintf("sync group %v members disagree on weekly hours", groupID),
				}
			}
		}

		active := make([]int, 0, len(builder.slots))
		for slot := range builder.slots {
			allEligible := lo.EveryBy(members, func(member int) bool {
				return builder.eligibility.Eligible(member, slot)
			})

			if allEligible {
				groupActive := builder.aux()
				for _, member := range members {
					decision := builder.indexer.Index(member, slot)
					builder.constrs = append(builder.constrs,
						solver.PropClause(-decision, groupActive),
						solver.PropClause(-groupActive, decision),
					)
				}
				active = append(active, groupActive)
				continue
			}

			// The group cannot meet here, so no member may use the slot alone
			for _, member := range members {
				if builder.eligibility.Eligible(member, slot) {
					builder.constrs = append(builder.constrs, solver.PropClause(-builder.indexer.Index(member, slot)))
				}
			}
		}

		if len(active) < hours {
			return &ModelError{
				CourseID: builder.courses[members[0]].ID,
				Reason:   fmt.Sprintf("sync group %v can meet at %v slots but needs %v", groupID, len(active), hours),
			}
		}

		builder.constrs = append(builder.constrs,
			solver.AtLeast(active, hours),
			solver.AtMost(active, hours),
		)
	}

	return nil
}

// dailyLimitConstraints caps the targeted entity's periods per day: as a
// cardinality constraint when hard, as weighted overload literals when soft.
func (builder *pbBuilder) dailyLimitConstraints(records []sched.ConstraintRecord, asHard bool) error {
	for _, record := range records {
		if record.Kind != sched.DailyLimit {
			continue
		}
		payload, err := record.DailyLimitPayload()
		if err != nil {
			return err
		}

		matching := lo.Filter(lo.Range(len(builder.courses)), func(course, _ int) bool {
			return targetsCourse(record.Target, builder.courses[course]) ||
				builder.courses[course].TaughtBy(record.Target)
		})

		for _, day := range builder.schoolDays() {
			lits := make([]int, 0)
			for slot := range builder.slots {
				if builder.slots[slot].Day != day {
					continue
				}
				for _, course := range matching {
					if builder.eligibility.Eligible(course, slot) {
						lits = append(lits, builder.indexer.Index(course, slot))
					}
				}
			}

			if len(lits) <= payload.MaxPerDay {
				continue
			}

			if asHard {
				builder.constrs = append(builder.constrs, solver.AtMost(lits, payload.MaxPerDay))
				continue
			}
			builder.overloadTerms(lits, payload.MaxPerDay, builder.softWeight(record))
		}
	}

	return nil
}

// softExclusionPenalties prices occupying a slot a below-cutoff record
// discourages, instead of forbidding it.
func (builder *pbBuilder) softExclusionPenalties(soft []sched.ConstraintRecord) error {
	for _, record := range soft {
		weight := builder.softWeight(record)
		err := recordExclusions(record, builder.courses, builder.slots, func(course, slot int) {
			if builder.eligibility.Eligible(course, slot) {
				builder.objective = append(builder.objective, Term{
					Lit:    builder.indexer.Index(course, slot),
					Weight: weight,
				})
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// overloadTerms makes "sum of lits beyond limit" expressible as weighted
// literals: one overload literal must rise for every occupied unit past the
// limit.
func (builder *pbBuilder) overloadTerms(lits []int, limit, weight int) {
	negated := lo.Map(lits, func(lit, _ int) int { return -lit })

	overloads := make([]int, 0, len(lits)-limit)
	for range len(lits) - limit {
		overload := builder.aux()
		overloads = append(overloads, overload)
		builder.objective = append(builder.objective, Term{Lit: overload, Weight: weight})
	}

	builder.constrs = append(builder.constrs, solver.AtLeast(append(negated, overloads...), len(lits)-limit))
}

// softWeight scales the penalty down as a record's priority drifts away
// from the hard cutoff.
func (builder *pbBuilder) softWeight(record sched.ConstraintRecord) int {
	weight := builder.weights.Soft
	if distance := record.Priority - builder.config.PriorityCutoff; distance > 1 {
		weight = max(1, weight/distance)
	}
	return max(1, weight)
}

func (builder *pbBuilder) schoolDays() []int {
	days := lo.Uniq(lo.Map(builder.slots, func(slot sched.Slot, _ int) int { return slot.Day }))
	slices.Sort(days)
	return days
}

func sameSyncGroup(course1, course2 sched.Course) bool {
	return course1.SyncGroup != "" && course1.SyncGroup == course2.SyncGroup
}
