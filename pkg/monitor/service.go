// Package monitor runs the poll loop tying the device reading source to
// alert evaluation, persistence and statistics reporting. Every per-cycle
// failure is logged and isolated; nothing here terminates the process.
package monitor

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kstephens1/ZappiMon/pkg/alert"
	"github.com/kstephens1/ZappiMon/pkg/notify"
	"github.com/kstephens1/ZappiMon/pkg/stats"
)

const alertTitle = "ZappiMon - Excessive Export Alert"

type Monitor struct {
	source   ReadingSource
	store    ReadingStore
	notifier notify.Sender
	cfg      Config

	state alert.State
}

func New(source ReadingSource, store ReadingStore, notifier notify.Sender, cfg Config) *Monitor {
	if cfg.ThresholdWatts == 0 {
		cfg.ThresholdWatts = alert.DefaultThresholdWatts
	}
	if cfg.StatsWindow == 0 {
		cfg.StatsWindow = stats.DefaultWindow
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Monitor{
		source:   source,
		store:    store,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Run executes one cycle immediately, then one per tick until a signal
// arrives. A stop takes effect between cycles, never mid-cycle.
func (m *Monitor) Run(tick <-chan time.Time, sig <-chan os.Signal) {
	m.RunCycle()
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			return
		case <-tick:
			m.RunCycle()
		}
	}
}

// RunCycle performs a single poll cycle: read, evaluate, persist, report.
// A failed device read skips the remaining steps; later failures only
// skip their own step.
func (m *Monitor) RunCycle() {
	reading, err := m.source.CurrentReading()
	if err != nil {
		log.Printf("Error reading device: %v", err)
		return
	}

	switch {
	case reading.Watts > 0:
		fmt.Fprintf(m.cfg.Out, "Importing: %d\n", reading.Watts)
	case reading.Watts < 0:
		fmt.Fprintf(m.cfg.Out, "Exporting: %d\n", reading.Watts)
	default:
		fmt.Fprintf(m.cfg.Out, "Grid: %d (neutral)\n", reading.Watts)
	}

	// State advances whether or not delivery succeeds, so a sustained
	// excursion never produces a second notification attempt.
	next, shouldNotify, message := alert.Evaluate(m.state, reading.Watts, m.cfg.ThresholdWatts)
	m.state = next
	if shouldNotify {
		fmt.Fprintln(m.cfg.Out, ">>>>>>>Excessive Export Alert<<<<<<<")
		if err := m.notifier.Send(message, alertTitle, 1); err != nil {
			log.Printf("Error sending notification: %v", err)
		}
	}

	if err := m.store.InsertGridReading(reading); err != nil {
		log.Printf("Error storing reading: %v", err)
	}

	windowStats, err := stats.ComputeWindow(m.store, m.cfg.Now(), m.cfg.StatsWindow)
	if err != nil {
		log.Printf("Error computing statistics: %v", err)
	} else {
		fmt.Fprint(m.cfg.Out, windowStats.Render(m.cfg.StatsWindow))
	}

	if m.cfg.OnReading != nil {
		m.cfg.OnReading(*reading)
	}
}

// State returns the current alert state.
func (m *Monitor) State() alert.State {
	return m.state
}
