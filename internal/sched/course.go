package sched

import (
	"slices"

	"github.com/samber/lo"
)

// Course is a normalized course record: explicit teacher and class sets,
// established once by the catalog normalizer and never re-parsed. Courses
// are read-only inputs to the rest of the pipeline.
type Course struct {
	ID          int
	Subject     string
	WeeklyHours int
	Teachers    []string // sorted, no duplicates, non-empty
	Classes     []string // sorted, no duplicates, non-empty
	SyncGroup   string   // empty when the course is not synchronized
}

// Covers reports whether the course occupies the class's timetable.
func (c Course) Covers(class string) bool {
	_, found := slices.BinarySearch(c.Classes, class)
	return found
}

// TaughtBy reports whether the teacher is bound to the course.
func (c Course) TaughtBy(teacher string) bool {
	_, found := slices.BinarySearch(c.Teachers, teacher)
	return found
}

// BuildSyncGroups derives the sync-group map (group id -> member positions
// in the course list, ascending) from the course list. The map is recomputed
// at model-build time rather than stored.
func BuildSyncGroups(courses []Course) map[string][]int {
	groups := make(map[string][]int)
	for position, course := range courses {
		if course.SyncGroup == "" {
			continue
		}
		groups[course.SyncGroup] = append(groups[course.SyncGroup], position)
	}
	return groups
}

// ClassUniverse collects every class id referenced by the courses, sorted.
func ClassUniverse(courses []Course) []string {
	classes := lo.FlatMap(courses, func(course Course, _ int) []string { return course.Classes })
	classes = lo.Uniq(classes)
	slices.Sort(classes)
	return classes
}

// TeacherUniverse collects every teacher id referenced by the courses, sorted.
func TeacherUniverse(courses []Course) []string {
	teachers := lo.FlatMap(courses, func(course Course, _ int) []string { return course.Teachers })
	teachers = lo.Uniq(teachers)
	slices.Sort(teachers)
	return teachers
}
