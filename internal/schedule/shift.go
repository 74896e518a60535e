package schedule

import (
	"time"

	"batchplan/internal/catalog"
)

// cycleShift computes the single non-negative offset this cycle must be
// delayed by so no step's setup begins before its previous cycle's cleaning
// finished.
//
// The shift applies to the entire cycle uniformly. Delaying only the
// conflicting step would reopen gaps between adjacent operations, so one
// global value preserves every step's relative offset. The result is the
// minimum that satisfies all steps simultaneously: it equals the worst-case
// step's requirement, never more. A side effect, kept on purpose: a step
// whose own resource is already free can still be delayed because a sibling
// step needed a larger shift.
func cycleShift(steps []catalog.Step, times []phaseTimes, avail *availability) time.Duration {
	var shift time.Duration
	for i, s := range steps {
		required := avail.cleanEnd(s.ID) - times[i].setupStart
		if required > shift {
			shift = required
		}
	}
	return shift
}
