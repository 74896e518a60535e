package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Wire types for the plan file. All durations are Go duration strings
// (e.g. "30m", "1h30m"); fractional hours are written as "1h30m" and
// friends.
//
// Example (YAML):
//
//	steps:
//	  - id: A
//	    setup: 10h
//	    operation: 5h
//	    cleaning: 2h
//	    resources: [tank1, tank2]
//	resources:
//	  - id: tank1
//	    cleaning: 3h
type planFile struct {
	Steps     []stepFile     `json:"steps"`
	Resources []resourceFile `json:"resources,omitempty"`
}

type stepFile struct {
	ID        string   `json:"id"`
	Setup     string   `json:"setup,omitempty"`
	Operation string   `json:"operation"`
	Cleaning  string   `json:"cleaning,omitempty"`
	Resources []string `json:"resources,omitempty"`
}

type resourceFile struct {
	ID       string `json:"id"`
	Cleaning string `json:"cleaning,omitempty"`
}

// decodePlan decodes raw file bytes (YAML or JSON, chosen by extension) into
// a validated Plan.
func decodePlan(path string, data []byte) (*Plan, error) {
	jb, _, err := coerceToJSONBytes(path, data)
	if err != nil {
		return nil, err
	}

	var pf planFile
	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&pf); err != nil {
		return nil, err
	}
	// reject trailing tokens (e.g. concatenated JSON)
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("invalid plan file: trailing data")
		}
		return nil, err
	}

	plan := &Plan{
		Steps:     make([]Step, 0, len(pf.Steps)),
		Resources: make([]Resource, 0, len(pf.Resources)),
	}
	for i, sf := range pf.Steps {
		fieldPath := fmt.Sprintf("steps[%d]", i)
		if sf.ID != "" {
			fieldPath = "steps." + sf.ID
		}
		setup, err := parseDurationField(fieldPath+".setup", sf.Setup)
		if err != nil {
			return nil, err
		}
		op, err := parseDurationField(fieldPath+".operation", sf.Operation)
		if err != nil {
			return nil, err
		}
		cleaning, err := parseDurationField(fieldPath+".cleaning", sf.Cleaning)
		if err != nil {
			return nil, err
		}
		plan.Steps = append(plan.Steps, Step{
			ID:        sf.ID,
			Setup:     setup,
			Operation: op,
			Cleaning:  cleaning,
			Resources: append([]string(nil), sf.Resources...),
		})
	}
	for i, rf := range pf.Resources {
		fieldPath := fmt.Sprintf("resources[%d]", i)
		if rf.ID != "" {
			fieldPath = "resources." + rf.ID
		}
		cleaning, err := parseDurationField(fieldPath+".cleaning", rf.Cleaning)
		if err != nil {
			return nil, err
		}
		plan.Resources = append(plan.Resources, Resource{ID: rf.ID, Cleaning: cleaning})
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

func parseDurationField(path, raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", path, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must be >= 0", path)
	}
	return d, nil
}
