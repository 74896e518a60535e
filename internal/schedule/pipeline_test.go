package schedule

import (
	"testing"
	"time"

	"batchplan/internal/catalog"
)

func hours(n float64) time.Duration {
	return time.Duration(n * float64(time.Hour))
}

func TestPipelineTimesBackSolvesSetup(t *testing.T) {
	t.Parallel()
	steps := []catalog.Step{
		{ID: "A", Setup: hours(3), Operation: hours(5), Cleaning: hours(1)},
		{ID: "B", Setup: hours(2), Operation: hours(4), Cleaning: hours(1)},
	}

	got := pipelineTimes(steps)
	if len(got) != 2 {
		t.Fatalf("expected 2 phase tuples, got %d", len(got))
	}

	want := []phaseTimes{
		{setupStart: hours(-3), setupEnd: 0, opStart: 0, opEnd: hours(5), cleanStart: hours(5), cleanEnd: hours(6)},
		{setupStart: hours(3), setupEnd: hours(5), opStart: hours(5), opEnd: hours(9), cleanStart: hours(9), cleanEnd: hours(10)},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("step %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPipelineTimesZeroIdle(t *testing.T) {
	t.Parallel()
	steps := []catalog.Step{
		{ID: "A", Setup: hours(10), Operation: hours(5), Cleaning: hours(2)},
		{ID: "B", Setup: hours(3), Operation: hours(10), Cleaning: hours(1.5)},
		{ID: "C", Setup: hours(5), Operation: hours(14), Cleaning: hours(2)},
		{ID: "D", Setup: hours(2), Operation: hours(8), Cleaning: hours(1)},
	}

	times := pipelineTimes(steps)
	for i := 1; i < len(times); i++ {
		if times[i].opStart != times[i-1].opEnd {
			t.Fatalf("gap between steps %d and %d: opStart=%v prev opEnd=%v",
				i-1, i, times[i].opStart, times[i-1].opEnd)
		}
		// setup ends exactly at the operation boundary
		if times[i].setupEnd != times[i].opStart {
			t.Fatalf("step %d: setupEnd=%v opStart=%v", i, times[i].setupEnd, times[i].opStart)
		}
	}
}

func TestPipelineTimesZeroSetup(t *testing.T) {
	t.Parallel()
	steps := []catalog.Step{{ID: "A", Operation: hours(4)}}
	times := pipelineTimes(steps)
	if times[0].setupStart != 0 || times[0].setupEnd != 0 {
		t.Fatalf("zero setup should collapse to a point at 0, got %+v", times[0])
	}
	if times[0].cleanEnd != hours(4) {
		t.Fatalf("cleanEnd = %v, want %v", times[0].cleanEnd, hours(4))
	}
}
