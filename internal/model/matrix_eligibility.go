package model

import "schoolsched/internal/sched"

type matrixEligibility struct {
	eligible [][]bool   // course x slot
	blockers [][]string // per course, records that removed at least one slot
}

func newMatrixEligibility(courses []sched.Course, slots []sched.Slot, hard []sched.ConstraintRecord) (*matrixEligibility, error) {
	eligibility := matrixEligibility{
		eligible: make([][]bool, len(courses)),
		blockers: make([][]string, len(courses)),
	}
	for course := range courses {
		eligibility.eligible[course] = make([]bool, len(slots))
		for slot := range slots {
			eligibility.eligible[course][slot] = true
		}
	}

	for _, record := range hard {
		blocked := make(map[int]bool)
		err := recordExclusions(record, courses, slots, func(course, slot int) {
			if eligibility.eligible[course][slot] {
				eligibility.eligible[course][slot] = false
				blocked[course] = true
			}
		})
		if err != nil {
			return nil, err
		}

		for course := range eligibility.eligible {
			if blocked[course] {
				eligibility.blockers[course] = append(eligibility.blockers[course], record.String())
			}
		}
	}

	return &eligibility, nil
}

func (eligibility *matrixEligibility) Eligible(course, slot int) bool {
	return eligibility.eligible[course][slot]
}

func (eligibility *matrixEligibility) EligibleSlots(course int) []int {
	slots := make([]int, 0, len(eligibility.eligible[course]))
	for slot, ok := range eligibility.eligible[course] {
		if ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

func (eligibility *matrixEligibility) Blockers(course int) []string {
	return eligibility.blockers[course]
}
