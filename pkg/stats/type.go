package stats

// WindowStats summarizes grid readings over a trailing time window.
// The scalar fields are only meaningful when ReadingCount > 0;
// callers must check HasData before using them.
type WindowStats struct {
	ReadingCount  int     `json:"reading_count"`
	AverageWatts  float64 `json:"average_watts"`
	MinWatts      int     `json:"min_watts"`
	MaxWatts      int     `json:"max_watts"`
	ImportPeriods int     `json:"import_periods"`
	ExportPeriods int     `json:"export_periods"`
}

// HasData reports whether any readings fell inside the window.
func (w WindowStats) HasData() bool {
	return w.ReadingCount > 0
}
