package schedule

import (
	"slices"

	"github.com/samber/lo"

	"schoolsched/internal/sched"
)

// Report is the advisory quality audit of an extracted timetable. It never
// mutates the schedule; heuristic callers may also use it as a search
// signal.
type Report struct {
	GapCount      int     `json:"gapCount"`
	ConflictCount int     `json:"conflictCount"`
	BalanceScore  float64 `json:"balanceScore"`
	BlockScore    float64 `json:"blockScore"`
}

// Analyze audits an extracted schedule: within-day gaps per class, residual
// double-bookings, daily load balance and block shape. schoolDays is the
// grid's day universe, so empty days still count against balance.
func Analyze(entries []sched.Entry, schoolDays []int, blockMin, blockMax int) Report {
	return Report{
		GapCount:      gapCount(entries),
		ConflictCount: conflictCount(entries),
		BalanceScore:  balanceScore(entries, schoolDays),
		BlockScore:    blockScore(entries, blockMin, blockMax),
	}
}

// gapCount sums, over every class-day with at least two occupied periods,
// the empty periods between the first and last occupied one.
func gapCount(entries []sched.Entry) int {
	gaps := 0
	for _, periods := range classDayPeriods(entries) {
		if len(periods) < 2 {
			continue
		}
		gaps += periods[len(periods)-1] - periods[0] + 1 - len(periods)
	}
	return gaps
}

// conflictCount audits the invariants the model and extractor already
// enforce: it is expected to be zero. Co-teaching entries of one course
// repeat their teachers at one slot by design, so teacher conflicts only
// count distinct courses.
func conflictCount(entries []sched.Entry) int {
	conflicts := 0

	classSlots := lo.CountValuesBy(entries, func(entry sched.Entry) occupant {
		return occupant{class: entry.ClassID, slot: entry.SlotID}
	})
	for _, count := range classSlots {
		if count > 1 {
			conflicts++
		}
	}

	type teacherSlot struct {
		teacher string
		slot    int
	}
	teacherCourses := make(map[teacherSlot]map[int]bool)
	for _, entry := range entries {
		for _, teacher := range entry.Teachers {
			key := teacherSlot{teacher: teacher, slot: entry.SlotID}
			if teacherCourses[key] == nil {
				teacherCourses[key] = make(map[int]bool)
			}
			teacherCourses[key][entry.CourseID] = true
		}
	}
	for _, courses := range teacherCourses {
		if len(courses) > 1 {
			conflicts++
		}
	}

	return conflicts
}

// balanceScore is 1 minus the normalized variance of per-day occupied
// period counts, averaged over classes. 1 is a perfectly even week, 0 is
// the whole load dumped on one day.
func balanceScore(entries []sched.Entry, schoolDays []int) float64 {
	if len(entries) == 0 || len(schoolDays) < 2 {
		return 1
	}

	byClass := lo.GroupBy(entries, func(entry sched.Entry) string { return entry.ClassID })
	classes := lo.Keys(byClass)
	slices.Sort(classes)

	score := 0.0
	for _, class := range classes {
		counts := lo.CountValuesBy(byClass[class], func(entry sched.Entry) int { return entry.Day })

		mean := float64(len(byClass[class])) / float64(len(schoolDays))
		variance := 0.0
		for _, day := range schoolDays {
			deviation := float64(counts[day]) - mean
			variance += deviation * deviation
		}
		variance /= float64(len(schoolDays))

		worst := mean * mean * float64(len(schoolDays)-1)
		if worst == 0 {
			score += 1
			continue
		}
		score += max(0, 1-variance/worst)
	}

	return score / float64(len(classes))
}

// blockScore is the fraction of maximal same-subject same-class contiguous
// runs whose length falls inside the preferred range.
func blockScore(entries []sched.Entry, blockMin, blockMax int) float64 {
	type run struct {
		subject string
		length  int
	}
	runs := make([]run, 0)

	bySlot := make(map[classDay]map[int]string) // period -> subject
	for _, entry := range entries {
		key := classDay{class: entry.ClassID, day: entry.Day}
		if bySlot[key] == nil {
			bySlot[key] = make(map[int]string)
		}
		bySlot[key][entry.Period] = entry.Subject
	}

	for _, subjects := range bySlot {
		periods := lo.Keys(subjects)
		slices.Sort(periods)

		current := run{}
		for i, period := range periods {
			contiguous := i > 0 && period == periods[i-1]+1 && subjects[period] == current.subject
			if contiguous {
				current.length++
				continue
			}
			if current.length > 0 {
				runs = append(runs, current)
			}
			current = run{subject: subjects[period], length: 1}
		}
		if current.length > 0 {
			runs = append(runs, current)
		}
	}

	if len(runs) == 0 {
		return 1
	}

	preferred := lo.CountBy(runs, func(r run) bool {
		return r.length >= blockMin && r.length <= blockMax
	})
	return float64(preferred) / float64(len(runs))
}

type classDay struct {
	class string
	day   int
}

// classDayPeriods groups the occupied periods of every class-day, sorted
// and deduplicated.
func classDayPeriods(entries []sched.Entry) map[classDay][]int {
	grouped := make(map[classDay][]int)
	for _, entry := range entries {
		key := classDay{class: entry.ClassID, day: entry.Day}
		grouped[key] = append(grouped[key], entry.Period)
	}
	for key := range grouped {
		grouped[key] = lo.Uniq(grouped[key])
		slices.Sort(grouped[key])
	}
	return grouped
}
