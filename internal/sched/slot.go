package sched

import "slices"

// Slot is one (day, period) cell of the weekly grid. Ids are dense and
// follow the (day, period) order, so iterating slots by id is iterating
// the week chronologically.
type Slot struct {
	ID     int `json:"id"`
	Day    int `json:"day"`
	Period int `json:"period"`
}

// BuildGrid enumerates every schedulable slot of a week of the given shape,
// skipping forbidden days. The grid is fixed per run.
func BuildGrid(days, periodsPerDay int, forbiddenDays []int) []Slot {
	slots := make([]Slot, 0, days*periodsPerDay)

	id := 0
	for day := range days {
		if slices.Contains(forbiddenDays, day) {
			continue
		}
		for period := range periodsPerDay {
			slots = append(slots, Slot{ID: id, Day: day, Period: period})
			id++
		}
	}

	return slots
}
