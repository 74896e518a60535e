package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writePlanFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write plan file: %v", err)
	}
	return path
}

func TestManagerLoadAndGet(t *testing.T) {
	t.Parallel()
	path := writePlanFile(t, t.TempDir(), "plan.yaml", samplePlanYAML)

	m := NewManager(path)
	if m.Get() != nil {
		t.Fatal("Get before Load should be nil")
	}
	plan, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := m.Get(); got != plan {
		t.Fatal("Get should return the committed plan")
	}
	if m.lastHash == 0 {
		t.Fatal("Commit should record a content hash")
	}
}

func TestManagerLoadRejectsInvalidFile(t *testing.T) {
	t.Parallel()
	path := writePlanFile(t, t.TempDir(), "plan.yaml", "steps: []\n")

	m := NewManager(path)
	if _, err := m.Load(); err == nil {
		t.Fatal("expected error for empty step list")
	}
	if m.Get() != nil {
		t.Fatal("invalid file must not be committed")
	}
}

func TestManagerPublishDropsOldest(t *testing.T) {
	t.Parallel()
	m := NewManager("unused")
	ch := m.Subscribe(1)
	defer m.Unsubscribe(ch)

	p1 := &Plan{Steps: []Step{{ID: "A"}}}
	p2 := &Plan{Steps: []Step{{ID: "B"}}}
	m.publish(p1)
	m.publish(p2) // buffer full: p1 is dropped in favor of the newest

	got := <-ch
	if got != p2 {
		t.Fatalf("expected latest plan, got %+v", got.Steps)
	}
}
