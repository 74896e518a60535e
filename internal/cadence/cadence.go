// Package cadence derives a cycle count from plant-level scheduling
// constants (total window days, number of parallel lines). It is a
// convenience heuristic for the CLI only; the schedule builder itself takes
// an explicit cycle count and knows nothing about it.
package cadence

import (
	"errors"
	"fmt"
	"time"

	"batchplan/internal/catalog"
)

var ErrBadWindow = errors.New("invalid scheduling window")

// Window is the planning horizon: Days of calendar time shared across Lines
// parallel production lines.
type Window struct {
	Days  int
	Lines int
}

// DaysPerLine is the whole number of days each line gets within the window.
func (w Window) DaysPerLine() int {
	if w.Lines <= 0 {
		return 0
	}
	return w.Days / w.Lines
}

// ShortestStep returns the smallest setup+operation+cleaning total across
// the plan's steps, the pipeline's fastest full pass.
func ShortestStep(plan *catalog.Plan) time.Duration {
	var min time.Duration
	for i, s := range plan.Steps {
		if t := s.Total(); i == 0 || t < min {
			min = t
		}
	}
	return min
}

// Cycles estimates how many cycles fit one line's share of the window,
// assuming back-to-back passes of the fastest step. The division truncates;
// a partial cycle does not count.
func Cycles(w Window, plan *catalog.Plan) (int, error) {
	if w.Days <= 0 {
		return 0, fmt.Errorf("%w: days must be > 0", ErrBadWindow)
	}
	if w.Lines <= 0 {
		return 0, fmt.Errorf("%w: lines must be > 0", ErrBadWindow)
	}
	if err := plan.Validate(); err != nil {
		return 0, err
	}

	shortest := ShortestStep(plan)
	if shortest <= 0 {
		return 0, fmt.Errorf("%w: plan has no positive step duration", ErrBadWindow)
	}

	share := time.Duration(w.DaysPerLine()) * 24 * time.Hour
	return int(share / shortest), nil
}
