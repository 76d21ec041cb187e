package alert

import "fmt"

// Evaluate feeds one reading through the state machine.
// A notification fires only when the reading crosses into excessive export
// from the normal state; while the excursion persists no further
// notifications are produced. State returns to normal as soon as a reading
// no longer exceeds the threshold.
//
// Whether delivery of the message succeeds does not affect the returned
// state: advancing regardless keeps a sustained excursion at one
// notification even if the first send failed.
func Evaluate(prior State, watts int, thresholdWatts int) (next State, notify bool, message string) {
	exportWatts := 0
	if watts < 0 {
		exportWatts = -watts
	}
	exceeds := exportWatts > thresholdWatts

	next = State{ExportingExcessively: exceeds}
	if exceeds && !prior.ExportingExcessively {
		notify = true
		message = fmt.Sprintf("Excessive export detected: %dW", exportWatts)
	}
	return next, notify, message
}
