package schedule

import (
	"time"

	"batchplan/internal/catalog"
)

// availability records, per step, the absolute time its previous cycle's
// cleaning finished. Entries start at 0 and are overwritten once per cycle;
// because cycles only move forward, values never decrease.
type availability struct {
	lastCleanEnd map[string]time.Duration
}

func newAvailability(steps []catalog.Step) *availability {
	a := &availability{lastCleanEnd: make(map[string]time.Duration, len(steps))}
	for _, s := range steps {
		a.lastCleanEnd[s.ID] = 0
	}
	return a
}

// cleanEnd returns the step's last recorded cleaning end (0 if unseen).
func (a *availability) cleanEnd(stepID string) time.Duration {
	return a.lastCleanEnd[stepID]
}

// commit records a cycle's absolute cleaning end for the step. This is the
// only mutation path.
func (a *availability) commit(stepID string, end time.Duration) {
	a.lastCleanEnd[stepID] = end
}
