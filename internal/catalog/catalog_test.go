package catalog

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const samplePlanYAML = `
steps:
  - id: A
    setup: 10h
    operation: 5h
    cleaning: 2h
    resources: [tank1, tank2]
  - id: B
    setup: 3h
    operation: 10h
    cleaning: 1h30m
    resources: [tank3]
resources:
  - id: tank1
    cleaning: 3h
  - id: tank2
    cleaning: 2h30m
  - id: tank3
    cleaning: 2h
`

func TestDecodePlanYAML(t *testing.T) {
	t.Parallel()
	plan, err := decodePlan("plan.yaml", []byte(samplePlanYAML))
	if err != nil {
		t.Fatalf("decodePlan: %v", err)
	}

	if len(plan.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(plan.Steps))
	}
	a := plan.Steps[0]
	if a.ID != "A" || a.Setup != 10*time.Hour || a.Operation != 5*time.Hour || a.Cleaning != 2*time.Hour {
		t.Fatalf("unexpected step A: %+v", a)
	}
	if len(a.Resources) != 2 || a.Resources[0] != "tank1" || a.Resources[1] != "tank2" {
		t.Fatalf("step A resources = %v", a.Resources)
	}
	if plan.Steps[1].Cleaning != 90*time.Minute {
		t.Fatalf("step B cleaning = %v, want 1h30m", plan.Steps[1].Cleaning)
	}

	r, ok := plan.Resource("tank2")
	if !ok || r.Cleaning != 150*time.Minute {
		t.Fatalf("tank2 lookup = %+v (ok=%v)", r, ok)
	}
}

func TestDecodePlanJSON(t *testing.T) {
	t.Parallel()
	raw := `{"steps":[{"id":"A","operation":"4h"}]}`
	plan, err := decodePlan("plan.json", []byte(raw))
	if err != nil {
		t.Fatalf("decodePlan: %v", err)
	}
	if plan.Steps[0].Operation != 4*time.Hour {
		t.Fatalf("operation = %v", plan.Steps[0].Operation)
	}
}

func TestDecodePlanRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	raw := `
steps:
  - id: A
    operation: 4h
    colour: blue
`
	if _, err := decodePlan("plan.yaml", []byte(raw)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestDecodePlanRejectsBadDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "garbage",
			raw:  "steps:\n  - id: A\n    operation: fast\n",
			want: "invalid duration",
		},
		{
			name: "negative",
			raw:  "steps:\n  - id: A\n    operation: 4h\n    setup: -1h\n",
			want: "must be >= 0",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := decodePlan("plan.yaml", []byte(tt.raw))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestDecodePlanRejectsUnknownResource(t *testing.T) {
	t.Parallel()
	raw := "steps:\n  - id: A\n    operation: 4h\n    resources: [ghost]\n"
	_, err := decodePlan("plan.yaml", []byte(raw))
	if !errors.Is(err, ErrInvalidPlan) {
		t.Fatalf("expected ErrInvalidPlan, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		plan Plan
		ok   bool
	}{
		{
			name: "valid",
			plan: Plan{Steps: []Step{{ID: "A", Operation: time.Hour}}},
			ok:   true,
		},
		{
			name: "empty steps",
			plan: Plan{},
		},
		{
			name: "zero operation",
			plan: Plan{Steps: []Step{{ID: "A"}}},
		},
		{
			name: "duplicate step id",
			plan: Plan{Steps: []Step{
				{ID: "A", Operation: time.Hour},
				{ID: "A", Operation: time.Hour},
			}},
		},
		{
			name: "duplicate resource id",
			plan: Plan{
				Steps:     []Step{{ID: "A", Operation: time.Hour}},
				Resources: []Resource{{ID: "r"}, {ID: "r"}},
			},
		},
		{
			name: "negative resource cleaning",
			plan: Plan{
				Steps:     []Step{{ID: "A", Operation: time.Hour}},
				Resources: []Resource{{ID: "r", Cleaning: -time.Second}},
			},
		},
		{
			name: "unused resources are fine",
			plan: Plan{
				Steps:     []Step{{ID: "A", Operation: time.Hour}},
				Resources: []Resource{{ID: "spare", Cleaning: time.Hour}},
			},
			ok: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.plan.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !tt.ok {
				if !errors.Is(err, ErrInvalidPlan) {
					t.Fatalf("expected ErrInvalidPlan, got %v", err)
				}
			}
		})
	}
}

func TestPlanHashStable(t *testing.T) {
	t.Parallel()
	a, err := decodePlan("plan.yaml", []byte(samplePlanYAML))
	if err != nil {
		t.Fatalf("decodePlan: %v", err)
	}
	b, err := decodePlan("plan.yaml", []byte(samplePlanYAML))
	if err != nil {
		t.Fatalf("decodePlan: %v", err)
	}
	if a.Hash() == 0 || a.Hash() != b.Hash() {
		t.Fatalf("expected equal non-zero hashes, got %x and %x", a.Hash(), b.Hash())
	}

	b.Steps[0].Setup += time.Minute
	if a.Hash() == b.Hash() {
		t.Fatal("hash did not change with content")
	}
}
