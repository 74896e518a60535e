package cadence

import (
	"errors"
	"testing"
	"time"

	"batchplan/internal/catalog"
)

func sixStepPlan() *catalog.Plan {
	h := func(n float64) time.Duration { return time.Duration(n * float64(time.Hour)) }
	return &catalog.Plan{
		Steps: []catalog.Step{
			{ID: "A", Setup: h(10), Operation: h(5), Cleaning: h(2)},
			{ID: "B", Setup: h(3), Operation: h(10), Cleaning: h(1.5)},
			{ID: "C", Setup: h(5), Operation: h(14), Cleaning: h(2)},
			{ID: "D", Setup: h(2), Operation: h(8), Cleaning: h(1)},
			{ID: "E", Setup: h(3), Operation: h(9), Cleaning: h(1.5)},
			{ID: "F", Setup: h(4), Operation: h(11), Cleaning: h(2)},
		},
	}
}

func TestShortestStep(t *testing.T) {
	t.Parallel()
	if got, want := ShortestStep(sixStepPlan()), 11*time.Hour; got != want {
		t.Fatalf("ShortestStep = %v, want %v", got, want)
	}
}

func TestCycles(t *testing.T) {
	t.Parallel()
	// 14 days across 3 lines -> 4 whole days per line -> 96h / 11h -> 8 cycles.
	got, err := Cycles(Window{Days: 14, Lines: 3}, sixStepPlan())
	if err != nil {
		t.Fatalf("Cycles: %v", err)
	}
	if got != 8 {
		t.Fatalf("Cycles = %d, want 8", got)
	}
}

func TestCyclesZeroShare(t *testing.T) {
	t.Parallel()
	// More lines than days truncates the per-line share to zero days.
	got, err := Cycles(Window{Days: 2, Lines: 3}, sixStepPlan())
	if err != nil {
		t.Fatalf("Cycles: %v", err)
	}
	if got != 0 {
		t.Fatalf("Cycles = %d, want 0", got)
	}
}

func TestCyclesRejectsBadWindow(t *testing.T) {
	t.Parallel()
	tests := []Window{
		{Days: 0, Lines: 3},
		{Days: -1, Lines: 3},
		{Days: 14, Lines: 0},
	}
	for _, w := range tests {
		if _, err := Cycles(w, sixStepPlan()); !errors.Is(err, ErrBadWindow) {
			t.Fatalf("window %+v: expected ErrBadWindow, got %v", w, err)
		}
	}
}

func TestCyclesRejectsInvalidPlan(t *testing.T) {
	t.Parallel()
	if _, err := Cycles(Window{Days: 14, Lines: 3}, &catalog.Plan{}); !errors.Is(err, catalog.ErrInvalidPlan) {
		t.Fatalf("expected ErrInvalidPlan, got %v", err)
	}
}
