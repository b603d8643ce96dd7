package solve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"schoolsched/internal/model"
	"schoolsched/internal/sched"
)

var testWeights = model.Weights{Gap: 5, Balance: 2, Block: 1, Soft: 3}

var testConfig = model.Config{PriorityCutoff: 1, BlockMin: 2, BlockMax: 2}

func TestSolve(t *testing.T) {
	solver := NewGophersatSolver(nil)

	t.Run("Satisfiable model solves to optimality", func(t *testing.T) {
		// Arrange
		courses := []sched.Course{
			{ID: 1, Subject: "math", WeeklyHours: 2, Teachers: []string{"levi"}, Classes: []string{"7a"}},
			{ID: 2, Subject: "physics", WeeklyHours: 1, Teachers: []string{"cohen"}, Classes: []string{"7a"}},
		}
		slots := sched.BuildGrid(2, 3, nil)
		m, err := model.Build(courses, slots, nil, testWeights, testConfig)
		assert.Nil(t, err)

		// Act
		result := solver.Solve(m, 30*time.Second)

		// Assert
		assert.Equal(t, Optimal, result.Status)
		assert.True(t, result.Status.Solved())
		assert.NotNil(t, result.Assignment)

		// Hours conservation over the decision block
		placed := 0
		for course := range courses {
			for slot := range slots {
				if model.LitTrue(result.Assignment, m.Indexer.Index(course, slot)) {
					placed++
				}
			}
		}
		assert.Equal(t, 3, placed)
	})

	t.Run("Jointly unsatisfiable hard constraints report INFEASIBLE", func(t *testing.T) {
		// Arrange: two 2-hour courses of one teacher, but only 3 usable slots
		courses := []sched.Course{
			{ID: 1, Subject: "math", WeeklyHours: 2, Teachers: []string{"levi"}, Classes: []string{"7a"}},
			{ID: 2, Subject: "physics", WeeklyHours: 2, Teachers: []string{"levi"}, Classes: []string{"7b"}},
		}
		slots := sched.BuildGrid(1, 3, nil)
		m, err := model.Build(courses, slots, nil, testWeights, testConfig)
		assert.Nil(t, err)

		// Act
		result := solver.Solve(m, 30*time.Second)

		// Assert
		assert.Equal(t, Infeasible, result.Status)
		assert.False(t, result.Status.Solved())
		assert.Nil(t, result.Assignment)
	})

	t.Run("Expired budget reports TIMEOUT_NO_SOLUTION", func(t *testing.T) {
		// Arrange
		courses := []sched.Course{
			{ID: 1, Subject: "math", WeeklyHours: 1, Teachers: []string{"levi"}, Classes: []string{"7a"}},
		}
		slots := sched.BuildGrid(1, 2, nil)
		m, err := model.Build(courses, slots, nil, testWeights, testConfig)
		assert.Nil(t, err)

		// Act
		result := solver.Solve(m, -time.Second)

		// Assert
		assert.Equal(t, Timeout, result.Status)
		assert.Nil(t, result.Assignment)
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "OPTIMAL", Optimal.String())
	assert.Equal(t, "FEASIBLE", Feasible.String())
	assert.Equal(t, "INFEASIBLE", Infeasible.String())
	assert.Equal(t, "TIMEOUT_NO_SOLUTION", Timeout.String())
}
