package sched

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

type ConstraintKind string

const (
	TeacherAvailability ConstraintKind = "teacher_availability"
	DayRestriction      ConstraintKind = "day_restriction"
	TimeRestriction     ConstraintKind = "time_restriction"
	DailyLimit          ConstraintKind = "daily_limit"
)

// ConstraintRecord is an institutional rule handed to the model builder.
// Priority decides hard-vs-soft treatment: records at or below the
// configured cutoff are enforced, the rest are penalized.
type ConstraintRecord struct {
	Kind     ConstraintKind `mapstructure:"kind" json:"kind"`
	Target   string         `mapstructure:"target" json:"target"` // teacher id, class id or subject; empty means global
	Payload  map[string]any `mapstructure:"payload" json:"payload"`
	Priority int            `mapstructure:"priority" json:"priority"`
}

func (r ConstraintRecord) String() string {
	return fmt.Sprintf("%v(%v, priority=%v)", r.Kind, r.Target, r.Priority)
}

// TeacherAvailabilityPayload marks a teacher unavailable on a day. An empty
// Periods list blocks the whole day.
type TeacherAvailabilityPayload struct {
	Day     int   `mapstructure:"day"`
	Periods []int `mapstructure:"periods"`
}

// DayRestrictionPayload blocks whole days for the targeted class or subject.
type DayRestrictionPayload struct {
	Days []int `mapstructure:"days"`
}

// TimeRestrictionPayload restricts the targeted subject or class to a
// period range, inclusive on both ends.
type TimeRestrictionPayload struct {
	MinPeriod int `mapstructure:"minPeriod"`
	MaxPeriod int `mapstructure:"maxPeriod"`
}

// DailyLimitPayload caps how many periods per day the target may occupy.
type DailyLimitPayload struct {
	MaxPerDay int `mapstructure:"maxPerDay"`
}

func (r ConstraintRecord) TeacherAvailabilityPayload() (TeacherAvailabilityPayload, error) {
	var payload TeacherAvailabilityPayload
	err := decodePayload(r, &payload)
	return payload, err
}

func (r ConstraintRecord) DayRestrictionPayload() (DayRestrictionPayload, error) {
	var payload DayRestrictionPayload
	err := decodePayload(r, &payload)
	return payload, err
}

func (r ConstraintRecord) TimeRestrictionPayload() (TimeRestrictionPayload, error) {
	var payload TimeRestrictionPayload
	err := decodePayload(r, &payload)
	return payload, err
}

func (r ConstraintRecord) DailyLimitPayload() (DailyLimitPayload, error) {
	var payload DailyLimitPayload
	err := decodePayload(r, &payload)
	return payload, err
}

func decodePayload(record ConstraintRecord, out any) error {
	if err := mapstructure.Decode(record.Payload, out); err != nil {
		return fmt.Errorf("cannot decode %v payload: %w", record.Kind, err)
	}
	return nil
}
