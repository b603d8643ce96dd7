package model

import "schoolsched/internal/sched"

// Eligibility answers whether a course may occupy a slot at all under the
// hard constraint records. Courses and slots are addressed by position, not
// by id.
type Eligibility interface {
	// Checks whether the course may be placed at the slot
	Eligible(course, slot int) bool

	// Returns the slots the course may be placed at, ascending
	EligibleSlots(course int) []int

	// Returns the records that removed at least one slot from the course
	Blockers(course int) []string
}

// NewEligibility applies the hard availability, day and time records to the
// full (course, slot) grid. Daily limits are cardinality constraints and do
// not belong here.
func NewEligibility(courses []sched.Course, slots []sched.Slot, hard []sched.ConstraintRecord) (Eligibility, error) {
	return newMatrixEligibility(courses, slots, hard)
}
