package monitor

import (
	"io"
	"time"

	"github.com/kstephens1/ZappiMon/pkg/types"
)

// ReadingSource produces the current grid power reading from the device.
type ReadingSource interface {
	CurrentReading() (*types.GridReading, error)
}

// ReadingStore persists readings and serves trailing-window queries.
type ReadingStore interface {
	InsertGridReading(r *types.GridReading) error
	ReadingsSince(cutoff time.Time) ([]types.GridReading, error)
}

// Config tunes a Monitor. Zero fields get defaults in New.
type Config struct {
	ThresholdWatts int
	StatsWindow    time.Duration

	// OnReading is called with each successfully acquired reading,
	// after persistence. Used for the websocket broadcast. May be nil.
	OnReading func(types.GridReading)

	// Out receives the per-cycle human-facing report. Defaults to stdout.
	Out io.Writer

	// Now is the clock, injectable for tests. Defaults to time.Now.
	Now func() time.Time
}
