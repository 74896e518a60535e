package history

// Package history provides a minimal persistence layer for schedule builds.
//
// It currently supports:
//   - Run appends (one row per successful build)
//   - Reading back the most recent runs for reporting
