package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schoolsched/internal/sched"
)

func TestEligibility(t *testing.T) {
	// Arrange
	courses := []sched.Course{
		{ID: 1, Subject: "math", WeeklyHours: 2, Teachers: []string{"levi"}, Classes: []string{"7a"}},
		{ID: 2, Subject: "sport", WeeklyHours: 1, Teachers: []string{"cohen"}, Classes: []string{"7b"}},
	}
	slots := sched.BuildGrid(2, 3, nil) // days 0..1, periods 0..2

	t.Run("No records leaves everything eligible", func(t *testing.T) {
		// Act
		eligibility, err := NewEligibility(courses, slots, nil)

		// Assert
		assert.Nil(t, err)
		for course := range courses {
			assert.Len(t, eligibility.EligibleSlots(course), len(slots))
			assert.Empty(t, eligibility.Blockers(course))
		}
	})

	t.Run("Teacher availability blocks only that teacher's courses", func(t *testing.T) {
		// Arrange
		records := []sched.ConstraintRecord{
			{
				Kind:     sched.TeacherAvailability,
				Target:   "levi",
				Payload:  map[string]any{"day": 1},
				Priority: 0,
			},
		}

		// Act
		eligibility, err := NewEligibility(courses, slots, records)

		// Assert
		assert.Nil(t, err)
		for slot := range slots {
			assert.Equal(t, slots[slot].Day == 0, eligibility.Eligible(0, slot))
			assert.True(t, eligibility.Eligible(1, slot))
		}
		assert.Len(t, eligibility.Blockers(0), 1)
		assert.Empty(t, eligibility.Blockers(1))
	})

	t.Run("Availability with periods blocks only those periods", func(t *testing.T) {
		// Arrange
		records := []sched.ConstraintRecord{
			{
				Kind:     sched.TeacherAvailability,
				Target:   "levi",
				Payload:  map[string]any{"day": 0, "periods": []any{0, 1}},
				Priority: 0,
			},
		}

		// Act
		eligibility, err := NewEligibility(courses, slots, records)

		// Assert
		assert.Nil(t, err)
		for slot := range slots {
			blocked := slots[slot].Day == 0 && slots[slot].Period <= 1
			assert.Equal(t, !blocked, eligibility.Eligible(0, slot))
		}
	})

	t.Run("Time restriction keeps a subject inside a period range", func(t *testing.T) {
		// Arrange
		records := []sched.ConstraintRecord{
			{
				Kind:     sched.TimeRestriction,
				Target:   "sport",
				Payload:  map[string]any{"minPeriod": 1, "maxPeriod": 2},
				Priority: 0,
			},
		}

		// Act
		eligibility, err := NewEligibility(courses, slots, records)

		// Assert
		assert.Nil(t, err)
		for slot := range slots {
			assert.True(t, eligibility.Eligible(0, slot))
			assert.Equal(t, slots[slot].Period >= 1, eligibility.Eligible(1, slot))
		}
	})

	t.Run("Global day restriction hits every course", func(t *testing.T) {
		// Arrange
		records := []sched.ConstraintRecord{
			{
				Kind:     sched.DayRestriction,
				Payload:  map[string]any{"days": []any{0}},
				Priority: 0,
			},
		}

		// Act
		eligibility, err := NewEligibility(courses, slots, records)

		// Assert
		assert.Nil(t, err)
		for course := range courses {
			for slot := range slots {
				assert.Equal(t, slots[slot].Day != 0, eligibility.Eligible(course, slot))
			}
		}
	})
}
