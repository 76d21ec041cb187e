package monitor

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/kstephens1/ZappiMon/pkg/types"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	watts []int
	errs  []error
	calls int
}

func (f *fakeSource) CurrentReading() (*types.GridReading, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return &types.GridReading{
		Timestamp: testNow.Add(time.Duration(i) * time.Minute),
		Watts:     f.watts[i],
	}, nil
}

type fakeStore struct {
	readings  []types.GridReading
	insertErr error
	queryErr  error
}

func (f *fakeStore) InsertGridReading(r *types.GridReading) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.readings = append(f.readings, *r)
	return nil
}

func (f *fakeStore) ReadingsSince(cutoff time.Time) ([]types.GridReading, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []types.GridReading
	for _, r := range f.readings {
		if !r.Timestamp.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Send(message, title string, priority int) error {
	f.sent = append(f.sent, message)
	return f.err
}

func newTestMonitor(source *fakeSource, store *fakeStore, notifier *fakeNotifier, out *bytes.Buffer) *Monitor {
	return New(source, store, notifier, Config{
		Out: out,
		Now: func() time.Time { return testNow.Add(time.Hour) },
	})
}

func TestCycleNotifiesOnExcessiveExport(t *testing.T) {
	source := &fakeSource{watts: []int{-1500}}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	var out bytes.Buffer

	m := newTestMonitor(source, store, notifier, &out)
	m.RunCycle()

	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	if !strings.Contains(notifier.sent[0], "1500") {
		t.Errorf("expected message with export magnitude, got %q", notifier.sent[0])
	}
	if !m.State().ExportingExcessively {
		t.Error("expected alerting state after excessive export")
	}
	if !strings.Contains(out.String(), "Exporting: -1500") {
		t.Errorf("expected export label in output, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Excessive Export Alert") {
		t.Errorf("expected alert banner in output, got %q", out.String())
	}
}

func TestSustainedExportNotifiesOnce(t *testing.T) {
	source := &fakeSource{watts: []int{-1500, -1400, -1300}}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	var out bytes.Buffer

	m := newTestMonitor(source, store, notifier, &out)
	for i := 0; i < 3; i++ {
		m.RunCycle()
	}

	if len(notifier.sent) != 1 {
		t.Errorf("expected 1 notification across sustained export, got %d", len(notifier.sent))
	}
	if !m.State().ExportingExcessively {
		t.Error("expected state to remain alerting")
	}
	if len(store.readings) != 3 {
		t.Errorf("expected 3 persisted readings, got %d", len(store.readings))
	}
}

func TestRecoveryAllowsNewNotification(t *testing.T) {
	source := &fakeSource{watts: []int{-1500, 200, -1200}}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	var out bytes.Buffer

	m := newTestMonitor(source, store, notifier, &out)
	m.RunCycle()
	m.RunCycle()
	if m.State().ExportingExcessively {
		t.Error("expected state back to normal after import reading")
	}
	m.RunCycle()

	if len(notifier.sent) != 2 {
		t.Errorf("expected 2 notifications for 2 excursions, got %d", len(notifier.sent))
	}
}

func TestImportReadingProducesNoNotification(t *testing.T) {
	source := &fakeSource{watts: []int{60}}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	var out bytes.Buffer

	m := newTestMonitor(source, store, notifier, &out)
	m.RunCycle()

	if len(notifier.sent) != 0 {
		t.Errorf("expected no notifications, got %d", len(notifier.sent))
	}
	if !strings.Contains(out.String(), "Importing: 60") {
		t.Errorf("expected import label in output, got %q", out.String())
	}
}

func TestSourceErrorSkipsCycle(t *testing.T) {
	source := &fakeSource{
		watts: []int{0, -1500},
		errs:  []error{errors.New("connection refused"), nil},
	}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	var out bytes.Buffer

	m := newTestMonitor(source, store, notifier, &out)
	m.RunCycle()

	if len(store.readings) != 0 {
		t.Error("failed read must not persist anything")
	}
	if len(notifier.sent) != 0 {
		t.Error("failed read must not notify")
	}

	// Next cycle proceeds normally
	m.RunCycle()
	if len(store.readings) != 1 {
		t.Errorf("expected loop to recover, got %d persisted readings", len(store.readings))
	}
	if len(notifier.sent) != 1 {
		t.Errorf("expected notification after recovery, got %d", len(notifier.sent))
	}
}

func TestStoreFailureDoesNotAbortCycle(t *testing.T) {
	source := &fakeSource{watts: []int{-1500, -1400}}
	store := &fakeStore{insertErr: errors.New("disk full"), queryErr: errors.New("disk full")}
	notifier := &fakeNotifier{}
	var out bytes.Buffer

	m := newTestMonitor(source, store, notifier, &out)
	m.RunCycle()
	m.RunCycle()

	// Alerting still happened despite the broken store
	if len(notifier.sent) != 1 {
		t.Errorf("expected 1 notification with broken store, got %d", len(notifier.sent))
	}
}

func TestDeliveryFailureStillAdvancesState(t *testing.T) {
	source := &fakeSource{watts: []int{-1500, -1400}}
	store := &fakeStore{}
	notifier := &fakeNotifier{err: errors.New("rate limited")}
	var out bytes.Buffer

	m := newTestMonitor(source, store, notifier, &out)
	m.RunCycle()
	m.RunCycle()

	// One attempt only: the failed delivery is not retried for the
	// same sustained excursion.
	if len(notifier.sent) != 1 {
		t.Errorf("expected 1 delivery attempt, got %d", len(notifier.sent))
	}
	if !m.State().ExportingExcessively {
		t.Error("expected state to advance despite delivery failure")
	}
}

func TestCycleReportsWindowStatistics(t *testing.T) {
	source := &fakeSource{watts: []int{60}}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	var out bytes.Buffer

	m := newTestMonitor(source, store, notifier, &out)
	m.RunCycle()

	report := out.String()
	if !strings.Contains(report, "Readings: 1") {
		t.Errorf("expected statistics block with reading count, got %q", report)
	}
	if !strings.Contains(report, "Average: 60.0W") {
		t.Errorf("expected average in statistics block, got %q", report)
	}
}

func TestOnReadingHook(t *testing.T) {
	source := &fakeSource{watts: []int{-200}}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	var out bytes.Buffer
	var broadcast []types.GridReading

	m := New(source, store, notifier, Config{
		Out:       &out,
		Now:       func() time.Time { return testNow },
		OnReading: func(r types.GridReading) { broadcast = append(broadcast, r) },
	})
	m.RunCycle()

	if len(broadcast) != 1 || broadcast[0].Watts != -200 {
		t.Errorf("expected reading broadcast to hook, got %v", broadcast)
	}
}

func TestRunStopsOnSignal(t *testing.T) {
	source := &fakeSource{watts: []int{100, 100, 100}}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	var out bytes.Buffer

	m := newTestMonitor(source, store, notifier, &out)

	tick := make(chan time.Time)
	sig := make(chan os.Signal)
	done := make(chan struct{})
	go func() {
		m.Run(tick, sig)
		close(done)
	}()

	// Unbuffered sends: each tick is consumed before the next step
	tick <- testNow
	tick <- testNow
	sig <- syscall.SIGTERM

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on signal")
	}

	// One immediate cycle plus two ticks
	if source.calls != 3 {
		t.Errorf("expected 3 cycles, got %d", source.calls)
	}
}
