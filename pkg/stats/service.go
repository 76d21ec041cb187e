package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/kstephens1/ZappiMon/pkg/types"
)

// DefaultWindow is the trailing duration reports are computed over.
const DefaultWindow = 24 * time.Hour

// Store is the slice of the reading store the statistics engine needs.
type Store interface {
	ReadingsSince(cutoff time.Time) ([]types.GridReading, error)
}

// ComputeWindow aggregates all readings in the trailing window ending at now.
// Readings with watts >= 0 count as import periods, watts < 0 as export
// periods, so the two always sum to the reading count.
func ComputeWindow(store Store, now time.Time, window time.Duration) (WindowStats, error) {
	readings, err := store.ReadingsSince(now.Add(-window))
	if err != nil {
		return WindowStats{}, err
	}

	var w WindowStats
	var sum int64
	for _, r := range readings {
		if w.ReadingCount == 0 || r.Watts < w.MinWatts {
			w.MinWatts = r.Watts
		}
		if w.ReadingCount == 0 || r.Watts > w.MaxWatts {
			w.MaxWatts = r.Watts
		}
		if r.Watts >= 0 {
			w.ImportPeriods++
		} else {
			w.ExportPeriods++
		}
		sum += int64(r.Watts)
		w.ReadingCount++
	}
	if w.ReadingCount > 0 {
		w.AverageWatts = float64(sum) / float64(w.ReadingCount)
	}
	return w, nil
}

// Render formats the statistics block printed each cycle.
func (w WindowStats) Render(window time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Last %s ---\n", window)
	if !w.HasData() {
		b.WriteString("No readings in window\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Readings: %d\n", w.ReadingCount)
	fmt.Fprintf(&b, "Average: %.1fW\n", w.AverageWatts)
	fmt.Fprintf(&b, "Range: %dW to %dW\n", w.MinWatts, w.MaxWatts)
	fmt.Fprintf(&b, "Import periods: %d, Export periods: %d\n", w.ImportPeriods, w.ExportPeriods)
	return b.String()
}
