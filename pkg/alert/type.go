// Package alert contains the pure excessive-export detection logic.
// It has no external dependencies; delivery is the caller's concern.
package alert

// DefaultThresholdWatts is the export magnitude above which an
// excursion is considered excessive.
const DefaultThresholdWatts = 1000

// State tracks whether the most recent reading was an excessive export.
// The zero value is the starting state at process boot.
type State struct {
	ExportingExcessively bool
}
