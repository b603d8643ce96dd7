package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"schoolsched/internal/sched"
)

var testWeights = Weights{Gap: 5, Balance: 2, Block: 1, Soft: 3}

var testConfig = Config{PriorityCutoff: 1, BlockMin: 2, BlockMax: 2}

func TestBuild(t *testing.T) {
	t.Run("Small catalog builds", func(t *testing.T) {
		// Arrange
		courses := []sched.Course{
			{ID: 1, Subject: "math", WeeklyHours: 2, Teachers: []string{"levi"}, Classes: []string{"7a"}},
			{ID: 2, Subject: "physics", WeeklyHours: 1, Teachers: []string{"cohen"}, Classes: []string{"7a"}},
		}
		slots := sched.BuildGrid(2, 3, nil)

		// Act
		m, err := Build(courses, slots, nil, testWeights, testConfig)

		// Assert
		assert.Nil(t, err)
		assert.NotNil(t, m)
		assert.Equal(t, len(courses)*len(slots), m.Indexer.Decisions())
		assert.GreaterOrEqual(t, m.Variables, m.Indexer.Decisions())
		assert.NotEmpty(t, m.Constrs)
	})

	t.Run("Empty inputs fail", func(t *testing.T) {
		// Arrange
		slots := sched.BuildGrid(2, 3, nil)
		courses := []sched.Course{
			{ID: 1, Subject: "math", WeeklyHours: 1, Teachers: []string{"levi"}, Classes: []string{"7a"}},
		}

		// Act
		_, noCoursesErr := Build(nil, slots, nil, testWeights, testConfig)
		_, noSlotsErr := Build(courses, nil, nil, testWeights, testConfig)

		// Assert
		assert.NotNil(t, noCoursesErr)
		assert.NotNil(t, noSlotsErr)
	})

	t.Run("Course with zero eligible slots yields ModelError", func(t *testing.T) {
		// Arrange
		courses := []sched.Course{
			{ID: 7, Subject: "math", WeeklyHours: 1, Teachers: []string{"levi"}, Classes: []string{"7a"}},
		}
		slots := sched.BuildGrid(1, 3, nil)
		records := []sched.ConstraintRecord{
			{Kind: sched.DayRestriction, Target: "7a", Payload: map[string]any{"days": []any{0}}, Priority: 0},
		}

		// Act
		m, err := Build(courses, slots, records, testWeights, testConfig)

		// Assert
		assert.Nil(t, m)
		var modelErr *ModelError
		assert.True(t, errors.As(err, &modelErr))
		assert.Equal(t, 7, modelErr.CourseID)
		assert.Contains(t, modelErr.Record, "day_restriction")
	})

	t.Run("More hours than eligible slots yields ModelError before solving", func(t *testing.T) {
		// Arrange
		courses := []sched.Course{
			{ID: 3, Subject: "math", WeeklyHours: 4, Teachers: []string{"levi"}, Classes: []string{"7a"}},
		}
		slots := sched.BuildGrid(1, 3, nil)

		// Act
		m, err := Build(courses, slots, nil, testWeights, testConfig)

		// Assert
		assert.Nil(t, m)
		var modelErr *ModelError
		assert.True(t, errors.As(err, &modelErr))
		assert.Equal(t, 3, modelErr.CourseID)
		assert.Contains(t, modelErr.Reason, "exceed")
	})

	t.Run("Sync group members must agree on hours", func(t *testing.T) {
		// Arrange
		courses := []sched.Course{
			{ID: 1, Subject: "math", WeeklyHours: 2, Teachers: []string{"levi"}, Classes: []string{"7a"}, SyncGroup: "g"},
			{ID: 2, Subject: "math", WeeklyHours: 3, Teachers: []string{"cohen"}, Classes: []string{"7b"}, SyncGroup: "g"},
		}
		slots := sched.BuildGrid(2, 3, nil)

		// Act
		m, err := Build(courses, slots, nil, testWeights, testConfig)

		// Assert
		assert.Nil(t, m)
		var modelErr *ModelError
		assert.True(t, errors.As(err, &modelErr))
		assert.Contains(t, modelErr.Reason, "disagree")
	})

	t.Run("Single-member sync group adds no group variables", func(t *testing.T) {
		// Arrange
		single := []sched.Course{
			{ID: 1, Subject: "math", WeeklyHours: 1, Teachers: []string{"levi"}, Classes: []string{"7a", "7b"}, SyncGroup: "g"},
		}
		plain := []sched.Course{
			{ID: 1, Subject: "math", WeeklyHours: 1, Teachers: []string{"levi"}, Classes: []string{"7a", "7b"}},
		}
		slots := sched.BuildGrid(2, 3, nil)

		// Act
		withGroup, err1 := Build(single, slots, nil, testWeights, testConfig)
		withoutGroup, err2 := Build(plain, slots, nil, testWeights, testConfig)

		// Assert
		assert.Nil(t, err1)
		assert.Nil(t, err2)
		assert.Equal(t, withoutGroup.Variables, withGroup.Variables)
		assert.Equal(t, len(withoutGroup.Constrs), len(withGroup.Constrs))
	})

	t.Run("Soft records add objective terms instead of exclusions", func(t *testing.T) {
		// Arrange
		courses := []sched.Course{
			{ID: 1, Subject: "math", WeeklyHours: 1, Teachers: []string{"levi"}, Classes: []string{"7a"}},
		}
		slots := sched.BuildGrid(1, 2, nil)
		soft := []sched.ConstraintRecord{
			{Kind: sched.TimeRestriction, Target: "math", Payload: map[string]any{"minPeriod": 1, "maxPeriod": 1}, Priority: 5},
		}

		// Act
		unconstrained, err1 := Build(courses, slots, nil, Weights{}, testConfig)
		penalized, err2 := Build(courses, slots, soft, Weights{Soft: 3}, testConfig)

		// Assert
		assert.Nil(t, err1)
		assert.Nil(t, err2)
		assert.Empty(t, unconstrained.Objective)
		assert.Len(t, penalized.Objective, 1)
		assert.Equal(t, penalized.Indexer.Index(0, 0), penalized.Objective[0].Lit)
	})
}

func TestCostAndBound(t *testing.T) {
	// Arrange
	m := &Model{
		Variables: 3,
		Objective: []Term{
			{Lit: 1, Weight: 5},
			{Lit: -2, Weight: 2},
			{Lit: 3, Weight: 1},
		},
	}
	assignment := []bool{true, true, false} // lit 1 true, lit -2 false, lit 3 false

	// Act
	cost := m.Cost(assignment)
	bound := m.Bound(cost - 1)

	// Assert
	assert.Equal(t, 5, cost)
	assert.Equal(t, []int{-1, 2, -3}, bound.Lits)
	assert.Equal(t, []int{5, 2, 1}, bound.Weights)
	// total weight 8, so cost <= 4 means negated terms must reach 8 - 4
	assert.Equal(t, 4, bound.AtLeast)
}

func TestLitTrue(t *testing.T) {
	assignment := []bool{true, false}

	assert.True(t, LitTrue(assignment, 1))
	assert.False(t, LitTrue(assignment, -1))
	assert.False(t, LitTrue(assignment, 2))
	assert.True(t, LitTrue(assignment, -2))
	// Variables past the assignment read as false
	assert.False(t, LitTrue(assignment, 3))
	assert.True(t, LitTrue(assignment, -3))
}
