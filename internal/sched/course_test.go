package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSyncGroups(t *testing.T) {
	// Arrange
	courses := []Course{
		{ID: 3, SyncGroup: "g1"},
		{ID: 1, SyncGroup: "g1"},
		{ID: 2, SyncGroup: ""},
		{ID: 4, SyncGroup: "g2"},
	}

	// Act
	groups := BuildSyncGroups(courses)

	// Assert
	assert.Len(t, groups, 2)
	assert.Equal(t, []int{0, 1}, groups["g1"])
	assert.Equal(t, []int{3}, groups["g2"])
}

func TestCoversAndTaughtBy(t *testing.T) {
	// Arrange
	course := Course{
		ID:       1,
		Teachers: []string{"cohen", "levi"},
		Classes:  []string{"7a", "7b"},
	}

	// Assert
	assert.True(t, course.Covers("7a"))
	assert.False(t, course.Covers("8a"))
	assert.True(t, course.TaughtBy("levi"))
	assert.False(t, course.TaughtBy("mizrahi"))
}

func TestUniverses(t *testing.T) {
	// Arrange
	courses := []Course{
		{ID: 1, Teachers: []string{"levi"}, Classes: []string{"7b", "7a"}},
		{ID: 2, Teachers: []string{"cohen", "levi"}, Classes: []string{"7a"}},
	}

	// Act
	classes := ClassUniverse(courses)
	teachers := TeacherUniverse(courses)

	// Assert
	assert.Equal(t, []string{"7a", "7b"}, classes)
	assert.Equal(t, []string{"cohen", "levi"}, teachers)
}
