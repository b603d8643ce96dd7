package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"schoolsched/internal/sched"
)

// Bounds clamp a course's weekly hours into a sane range so a single
// degenerate row cannot overload the solver.
type Bounds struct {
	MinHours int
	MaxHours int
}

// Normalizer turns raw course rows into canonical Course records. Comma
// splitting happens here and nowhere else.
type Normalizer interface {
	// Normalize returns the accepted courses plus one diagnostic per rejected
	// or adjusted row. Rejections do not stop the run.
	Normalize(raw []sched.RawCourse) ([]sched.Course, []string)
}

func NewNormalizer(bounds Bounds) Normalizer {
	return &splitNormalizer{bounds: bounds}
}

type splitNormalizer struct {
	bounds Bounds
}

func (normalizer *splitNormalizer) Normalize(raw []sched.RawCourse) ([]sched.Course, []string) {
	courses := make([]sched.Course, 0, len(raw))
	diagnostics := make([]string, 0)

	for _, row := range raw {
		course, err := normalizer.normalizeRow(row, &diagnostics)
		if err != nil {
			diagnostics = append(diagnostics, err.Error())
			continue
		}
		courses = append(courses, course)
	}

	slices.SortFunc(courses, func(a, b sched.Course) int { return a.ID - b.ID })
	return courses, diagnostics
}

func (normalizer *splitNormalizer) normalizeRow(row sched.RawCourse, diagnostics *[]string) (sched.Course, error) {
	teachers := splitNames(row.TeacherNames)
	classes := splitNames(row.ClassList)

	if len(teachers) == 0 {
		return sched.Course{}, &DataError{CourseID: row.ID, Reason: "empty teacher list"}
	} else if len(classes) == 0 {
		return sched.Course{}, &DataError{CourseID: row.ID, Reason: "empty class list"}
	} else if row.WeeklyHours < 1 {
		return sched.Course{}, &DataError{CourseID: row.ID, Reason: fmt.Sprintf("non-positive weekly hours: %v", row.WeeklyHours)}
	}

	hours := row.WeeklyHours
	if hours < normalizer.bounds.MinHours {
		*diagnostics = append(*diagnostics, fmt.Sprintf("course %v: weekly hours raised from %v to %v", row.ID, hours, normalizer.bounds.MinHours))
		hours = normalizer.bounds.MinHours
	} else if hours > normalizer.bounds.MaxHours {
		*diagnostics = append(*diagnostics, fmt.Sprintf("course %v: weekly hours lowered from %v to %v", row.ID, hours, normalizer.bounds.MaxHours))
		hours = normalizer.bounds.MaxHours
	}

	return sched.Course{
		ID:          row.ID,
		Subject:     row.Subject,
		WeeklyHours: hours,
		Teachers:    teachers,
		Classes:     classes,
		SyncGroup:   row.SyncGroup,
	}, nil
}

// splitNames splits a comma-joined name list into a sorted set, trimming
// whitespace and dropping empty tokens.
func splitNames(joined string) []string {
	names := lo.FilterMap(strings.Split(joined, ","), func(token string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(token)
		return trimmed, trimmed != ""
	})
	names = lo.Uniq(names)
	slices.Sort(names)
	return names
}
