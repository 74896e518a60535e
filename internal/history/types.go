package history

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("history disabled")

// Config configures history storage.
//
// Driver values:
//   - "file": dependency-free file backend (jsonl)
//   - "sqlite": SQLite database file (optional build tag)
//
// If Driver is empty or "none", history is disabled.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// RunEntry records one schedule build.
// Keep it compact and schema-stable.
type RunEntry struct {
	At        time.Time     `json:"at"`
	Source    string        `json:"source"` // plan file path
	PlanHash  uint64        `json:"plan_hash"`
	Steps     int           `json:"steps"`
	Resources int           `json:"resources"`
	Cycles    int           `json:"cycles"`
	Intervals int           `json:"intervals"`
	Makespan  time.Duration `json:"makespan"`
	TookMS    int64         `json:"took_ms"`
}
