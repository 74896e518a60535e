package schedule

import (
	"time"

	"batchplan/internal/catalog"
)

// pipelineTimes lays out one cycle's ideal, unshifted phase boundaries.
//
// Each step's setup is scheduled to finish exactly when the previous step's
// operation finishes, so the pipeline carries zero idle time between
// consecutive operations by construction. The price is that setup overlaps
// backward into the previous operation's window; for the first step it
// extends before the cycle's local zero. Negative starts here are not an
// error, they are the point.
func pipelineTimes(steps []catalog.Step) []phaseTimes {
	out := make([]phaseTimes, len(steps))
	var prevOpEnd time.Duration
	for i, s := range steps {
		setupStart := prevOpEnd - s.Setup
		setupEnd := prevOpEnd
		opStart := setupEnd
		opEnd := opStart + s.Operation
		cleanStart := opEnd
		cleanEnd := cleanStart + s.Cleaning

		out[i] = phaseTimes{
			setupStart: setupStart,
			setupEnd:   setupEnd,
			opStart:    opStart,
			opEnd:      opEnd,
			cleanStart: cleanStart,
			cleanEnd:   cleanEnd,
		}
		prevOpEnd = opEnd
	}
	return out
}
