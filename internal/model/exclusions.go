package model

import (
	"github.com/samber/lo"

	"schoolsched/internal/sched"
)

// recordExclusions visits every (course, slot) pair an availability, day or
// time record excludes. The same walk backs both hard eligibility and soft
// penalty terms, so the two treatments can never drift apart.
func recordExclusions(
	record sched.ConstraintRecord,
	courses []sched.Course,
	slots []sched.Slot,
	visit func(course, slot int),
) error {

	var courseMatch func(sched.Course) bool
	var slotMatch func(sched.Slot) bool

	switch record.Kind {
	case sched.TeacherAvailability:
		payload, err := record.TeacherAvailabilityPayload()
		if err != nil {
			return err
		}
		courseMatch = func(course sched.Course) bool { return course.TaughtBy(record.Target) }
		slotMatch = func(slot sched.Slot) bool {
			return slot.Day == payload.Day && (len(payload.Periods) == 0 || lo.Contains(payload.Periods, slot.Period))
		}

	case sched.DayRestriction:
		payload, err := record.DayRestrictionPayload()
		if err != nil {
			return err
		}
		courseMatch = func(course sched.Course) bool { return targetsCourse(record.Target, course) }
		slotMatch = func(slot sched.Slot) bool { return lo.Contains(payload.Days, slot.Day) }

	case sched.TimeRestriction:
		payload, err := record.TimeRestrictionPayload()
		if err != nil {
			return err
		}
		courseMatch = func(course sched.Course) bool { return targetsCourse(record.Target, course) }
		slotMatch = func(slot sched.Slot) bool { return slot.Period < payload.MinPeriod || slot.Period > payload.MaxPeriod }

	default:
		// Daily limits are cardinality constraints, not per-slot exclusions
		return nil
	}

	for course := range courses {
		if !courseMatch(courses[course]) {
			continue
		}
		for slot := range slots {
			if slotMatch(slots[slot]) {
				visit(course, slot)
			}
		}
	}

	return nil
}

// targetsCourse resolves a record target against a course: an empty target
// is global, otherwise the target names a class or a subject.
func targetsCourse(target string, course sched.Course) bool {
	return target == "" || course.Covers(target) || course.Subject == target
}
