package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"time"
)

// ErrInvalidPlan tags every plan validation failure so callers can
// errors.Is() them without matching message text.
var ErrInvalidPlan = errors.New("invalid plan")

// Step is one stage of the pipeline. Steps run in declared order every
// cycle; each carries its own setup/operation/cleaning phases plus the
// shared resources its setup occupies.
type Step struct {
	ID        string
	Setup     time.Duration
	Operation time.Duration
	Cleaning  time.Duration
	Resources []string
}

// Total is the wall time one pass of the step occupies on its own row.
func (s Step) Total() time.Duration { return s.Setup + s.Operation + s.Cleaning }

// Resource is a shared piece of equipment with a fixed cleaning turnaround.
type Resource struct {
	ID       string
	Cleaning time.Duration
}

// Plan is the immutable input configuration: the ordered step sequence and
// the resource table. Build a Plan once, Validate it, then treat it as
// read-only.
type Plan struct {
	Steps     []Step
	Resources []Resource

	byResource map[string]Resource
}

// Resource looks up a resource by id.
func (p *Plan) Resource(id string) (Resource, bool) {
	if p.byResource == nil {
		p.index()
	}
	r, ok := p.byResource[id]
	return r, ok
}

func (p *Plan) index() {
	p.byResource = make(map[string]Resource, len(p.Resources))
	for _, r := range p.Resources {
		p.byResource[r.ID] = r
	}
}

// Validate checks the whole configuration up front. A plan that fails
// validation must never reach the schedule builder.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps defined", ErrInvalidPlan)
	}

	p.index()
	if len(p.byResource) != len(p.Resources) {
		seen := map[string]bool{}
		for _, r := range p.Resources {
			if seen[r.ID] {
				return fmt.Errorf("%w: duplicate resource id %q", ErrInvalidPlan, r.ID)
			}
			seen[r.ID] = true
		}
	}

	seenStep := make(map[string]bool, len(p.Steps))
	for _, s := range p.Steps {
		if s.ID == "" {
			return fmt.Errorf("%w: step with empty id", ErrInvalidPlan)
		}
		if seenStep[s.ID] {
			return fmt.Errorf("%w: duplicate step id %q", ErrInvalidPlan, s.ID)
		}
		seenStep[s.ID] = true

		if s.Setup < 0 {
			return fmt.Errorf("%w: step %q: setup must be >= 0", ErrInvalidPlan, s.ID)
		}
		if s.Operation <= 0 {
			return fmt.Errorf("%w: step %q: operation must be > 0", ErrInvalidPlan, s.ID)
		}
		if s.Cleaning < 0 {
			return fmt.Errorf("%w: step %q: cleaning must be >= 0", ErrInvalidPlan, s.ID)
		}

		for _, rid := range s.Resources {
			if _, ok := p.byResource[rid]; !ok {
				return fmt.Errorf("%w: step %q references unknown resource %q", ErrInvalidPlan, s.ID, rid)
			}
		}
	}

	for _, r := range p.Resources {
		if r.ID == "" {
			return fmt.Errorf("%w: resource with empty id", ErrInvalidPlan)
		}
		if r.Cleaning < 0 {
			return fmt.Errorf("%w: resource %q: cleaning must be >= 0", ErrInvalidPlan, r.ID)
		}
	}

	return nil
}

// Hash returns a stable content hash of the plan. Used to skip redundant
// rebuilds when a watched file is rewritten without changes, and recorded
// alongside run history entries.
func (p *Plan) Hash() uint64 {
	if p == nil {
		return 0
	}
	b, err := json.Marshal(struct {
		Steps     []Step
		Resources []Resource
	}{p.Steps, p.Resources})
	if err != nil {
		return 0
	}
	return hashBytes(b)
}

// hashBytes returns a stable 64-bit hash of bytes. Empty input returns 0.
func hashBytes(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}
