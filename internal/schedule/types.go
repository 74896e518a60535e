package schedule

import "time"

// Kind classifies an interval for consumers (renderers, reports).
// It is assigned at construction time; nothing should ever re-derive it
// from the display label.
type Kind uint8

const (
	KindSetup Kind = iota
	KindOperation
	KindCleaning
	KindResourceCleaning
)

func (k Kind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindOperation:
		return "operation"
	case KindCleaning:
		return "cleaning"
	case KindResourceCleaning:
		return "resource-cleaning"
	default:
		return "unknown"
	}
}

// Interval is one timed bar of the final schedule. Start and End are offsets
// from the schedule origin (t=0); Start <= End always. Row is the step or
// resource id the interval belongs to. Intervals are never mutated after
// creation.
type Interval struct {
	Label string
	Kind  Kind
	Row   string
	Start time.Duration
	End   time.Duration
	Cycle int
}

// Duration is End - Start.
func (iv Interval) Duration() time.Duration { return iv.End - iv.Start }

// phaseTimes is one step's cycle-local tuple of phase boundaries before the
// cycle shift is applied. SetupStart is routinely negative: setup is placed
// to finish exactly when the previous step's operation ends.
type phaseTimes struct {
	setupStart time.Duration
	setupEnd   time.Duration
	opStart    time.Duration
	opEnd      time.Duration
	cleanStart time.Duration
	cleanEnd   time.Duration
}

// Makespan returns the largest End across intervals (0 for an empty schedule).
func Makespan(intervals []Interval) time.Duration {
	var max time.Duration
	for _, iv := range intervals {
		if iv.End > max {
			max = iv.End
		}
	}
	return max
}
