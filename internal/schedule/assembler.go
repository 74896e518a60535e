package schedule

import (
	"errors"
	"fmt"

	"batchplan/internal/catalog"
)

// ErrNegativeCycles rejects a negative cycle count. Zero cycles is a valid
// request and yields an empty schedule.
var ErrNegativeCycles = errors.New("cycle count must be >= 0")

// Build computes the full schedule: cycles repetitions of the plan's step
// sequence, each cycle shifted as a whole to respect resource availability.
//
// The output is ordered cycle-major, then step declared order, then (within
// a step) its own three phases followed by its resources in declared order.
// Identical inputs always yield byte-identical output. On any configuration
// error nothing is emitted.
func Build(plan *catalog.Plan, cycles int) ([]Interval, error) {
	if cycles < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeCycles, cycles)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	perCycle := 0
	for _, s := range plan.Steps {
		perCycle += 3 + len(s.Resources)
	}
	intervals := make([]Interval, 0, cycles*perCycle)

	avail := newAvailability(plan.Steps)
	for cycle := 1; cycle <= cycles; cycle++ {
		times := pipelineTimes(plan.Steps)
		shift := cycleShift(plan.Steps, times, avail)

		for i, s := range plan.Steps {
			t := times[i]
			setupStart := t.setupStart + shift
			setupEnd := t.setupEnd + shift
			opStart := t.opStart + shift
			opEnd := t.opEnd + shift
			cleanStart := t.cleanStart + shift
			cleanEnd := t.cleanEnd + shift

			intervals = append(intervals,
				Interval{
					Label: fmt.Sprintf("%s Setup (Cycle %d)", s.ID, cycle),
					Kind:  KindSetup,
					Row:   s.ID,
					Start: setupStart,
					End:   setupEnd,
					Cycle: cycle,
				},
				Interval{
					Label: fmt.Sprintf("%s Operation (Cycle %d)", s.ID, cycle),
					Kind:  KindOperation,
					Row:   s.ID,
					Start: opStart,
					End:   opEnd,
					Cycle: cycle,
				},
				Interval{
					Label: fmt.Sprintf("%s Cleaning (Cycle %d)", s.ID, cycle),
					Kind:  KindCleaning,
					Row:   s.ID,
					Start: cleanStart,
					End:   cleanEnd,
					Cycle: cycle,
				},
			)

			// Resource turnaround runs alongside the step's setup: it starts
			// at the shifted setup start and lasts the resource's own
			// cleaning duration, independent of the step's phase boundaries.
			for _, rid := range s.Resources {
				res, ok := plan.Resource(rid)
				if !ok {
					// Validate() already rejected unknown references.
					return nil, fmt.Errorf("%w: step %q references unknown resource %q",
						catalog.ErrInvalidPlan, s.ID, rid)
				}
				intervals = append(intervals, Interval{
					Label: fmt.Sprintf("%s Cleaning (Cycle %d)", rid, cycle),
					Kind:  KindResourceCleaning,
					Row:   rid,
					Start: setupStart,
					End:   setupStart + res.Cleaning,
					Cycle: cycle,
				})
			}

			avail.commit(s.ID, cleanEnd)
		}
	}

	return intervals, nil
}
