package dto

import "time"

type IntentOutput struct {
	Kind  string
	Title string
	Body  string
	At    time.Time
}

// PollOutput reports one evaluation tick. Skipped is non-empty when the
// engine did not evaluate at all, Delivered tells whether an intent went
// out to the notifier.
type PollOutput struct {
	Delivered bool
	Intent    IntentOutput
	Skipped   string
}

type DoctorOutput struct {
	Name    string
	Version string
	OK      bool
	Error   string
}
