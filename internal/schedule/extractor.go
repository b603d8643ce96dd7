package schedule

import (
	"fmt"
	"slices"

	"schoolsched/internal/model"
	"schoolsched/internal/sched"
)

// occupant keys one class's claim on one slot.
type occupant struct {
	class string
	slot  int
}

// Extract walks the assignment in ascending (course, slot) order and fans
// every satisfied decision out into one entry per covered class. The
// occupancy set is scoped to this call and guarantees that a class never
// receives two entries for one slot, even if the upstream model was built
// from inconsistent data; a dropped candidate is reported, not fatal.
// Identical inputs yield identical output.
func Extract(
	courses []sched.Course,
	slots []sched.Slot,
	assignment []bool,
	indexer model.Indexer,
) ([]sched.Entry, []string) {

	entries := make([]sched.Entry, 0)
	diagnostics := make([]string, 0)
	occupied := make(map[occupant]bool)

	for course := range courses {
		for slot := range slots {
			if !model.LitTrue(assignment, indexer.Index(course, slot)) {
				continue
			}

			for _, class := range courses[course].Classes {
				key := occupant{class: class, slot: slots[slot].ID}
				if occupied[key] {
					diagnostics = append(diagnostics, fmt.Sprintf(
						"extraction conflict: class %v already occupied at slot %v, dropped course %v",
						class, slots[slot].ID, courses[course].ID,
					))
					continue
				}
				occupied[key] = true

				entries = append(entries, sched.Entry{
					CourseID: courses[course].ID,
					SlotID:   slots[slot].ID,
					ClassID:  class,
					Teachers: slices.Clone(courses[course].Teachers),
					Subject:  courses[course].Subject,
					Day:      slots[slot].Day,
					Period:   slots[slot].Period,
				})
			}
		}
	}

	return entries, diagnostics
}
