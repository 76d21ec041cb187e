package types

import "time"

// GridReading is one sample of instantaneous grid power from the Zappi.
// Negative watts means exporting to the grid, positive means importing.
type GridReading struct {
	Timestamp time.Time `json:"timestamp"`
	Watts     int       `json:"watts"`
}

// IsExporting reports whether power is flowing out to the grid.
func (r GridReading) IsExporting() bool {
	return r.Watts < 0
}

// ExportWatts returns the export magnitude, 0 when importing.
func (r GridReading) ExportWatts() int {
	if r.Watts < 0 {
		return -r.Watts
	}
	return 0
}
