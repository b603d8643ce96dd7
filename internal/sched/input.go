package sched

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// RawCourse is a course row as ingested: teacher and class lists are still
// comma-joined strings. The catalog normalizer turns these into Course
// records with explicit sets.
type RawCourse struct {
	ID           int    `mapstructure:"id" json:"id"`
	Subject      string `mapstructure:"subject" json:"subject" validate:"required"`
	WeeklyHours  int    `mapstructure:"weeklyHours" json:"weeklyHours"`
	TeacherNames string `mapstructure:"teacherNames" json:"teacherNames"`
	ClassList    string `mapstructure:"classList" json:"classList"`
	SyncGroup    string `mapstructure:"syncGroup" json:"syncGroup"`
}

// Problem is the JSON problem file: the grid shape, the raw course rows and
// the institutional constraint records.
type Problem struct {
	Days          int                `mapstructure:"days" validate:"min=1,max=7"`
	PeriodsPerDay int                `mapstructure:"periodsPerDay" validate:"min=1"`
	ForbiddenDays []int              `mapstructure:"forbiddenDays"`
	Courses       []RawCourse        `mapstructure:"courses" validate:"required,dive"`
	Constraints   []ConstraintRecord `mapstructure:"constraints"`
}

// Grid builds the slot grid the problem describes.
func (p Problem) Grid() []Slot {
	return BuildGrid(p.Days, p.PeriodsPerDay, p.ForbiddenDays)
}

// ProblemFromJSON reads and validates a problem file.
func ProblemFromJSON(file string) (Problem, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Problem{}, err
	}

	var problemJson map[string]any
	if err := json.Unmarshal(bytes, &problemJson); err != nil {
		return Problem{}, err
	}

	var problem Problem
	if err := mapstructure.Decode(problemJson, &problem); err != nil {
		return Problem{}, err
	}

	if err := validator.New().Struct(problem); err != nil {
		return Problem{}, fmt.Errorf("invalid problem file: %w", err)
	}

	return problem, nil
}
