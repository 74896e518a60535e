package schedule

import (
	"testing"
	"time"

	"batchplan/internal/catalog"
)

func TestCycleShiftFirstCycle(t *testing.T) {
	t.Parallel()
	steps := []catalog.Step{
		{ID: "A", Setup: hours(3), Operation: hours(5), Cleaning: hours(1)},
		{ID: "B", Setup: hours(2), Operation: hours(4), Cleaning: hours(1)},
	}
	times := pipelineTimes(steps)
	avail := newAvailability(steps)

	// All availability is 0, so the shift just lifts the most negative
	// setup start up to zero.
	if got, want := cycleShift(steps, times, avail), hours(3); got != want {
		t.Fatalf("shift = %v, want %v", got, want)
	}
}

func TestCycleShiftWorstStepWins(t *testing.T) {
	t.Parallel()
	steps := []catalog.Step{
		{ID: "A", Setup: hours(3), Operation: hours(5), Cleaning: hours(1)},
		{ID: "B", Setup: hours(2), Operation: hours(4), Cleaning: hours(1)},
	}
	times := pipelineTimes(steps)
	avail := newAvailability(steps)
	avail.commit("A", hours(9))
	avail.commit("B", hours(13))

	// A needs 9-(-3)=12, B needs 13-3=10; the cycle takes the max.
	if got, want := cycleShift(steps, times, avail), hours(12); got != want {
		t.Fatalf("shift = %v, want %v", got, want)
	}
}

func TestCycleShiftNeverNegative(t *testing.T) {
	t.Parallel()
	steps := []catalog.Step{
		{ID: "A", Operation: hours(5), Cleaning: hours(1)},
	}
	times := pipelineTimes(steps)
	avail := newAvailability(steps)

	// Setup start is 0 and availability is 0: nothing to wait for.
	if got := cycleShift(steps, times, avail); got != 0 {
		t.Fatalf("shift = %v, want 0", got)
	}
}

func TestAvailabilityDefaultsToZero(t *testing.T) {
	t.Parallel()
	avail := newAvailability(nil)
	if got := avail.cleanEnd("missing"); got != time.Duration(0) {
		t.Fatalf("cleanEnd for unseen step = %v, want 0", got)
	}
}
