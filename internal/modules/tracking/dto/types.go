package dto

import "time"

type SessionOutput struct {
	ID             int64
	Start          time.Time
	End            time.Time
	Open           bool
	UnprotectedSex bool
	Duration       time.Duration
}

type StartInput struct {
	Unprotected bool
}

type StopOutput struct {
	Segments []SessionOutput
}

type EditInput struct {
	ID          int64
	Start       time.Time
	End         time.Time
	Unprotected bool
}

type RolloverOutput struct {
	Closed   []SessionOutput
	Reopened SessionOutput
}

type DayStatusOutput struct {
	Day           time.Time
	Sessions      []SessionOutput
	TotalWearing  time.Duration
	Status        string
	Remaining     time.Duration
	Slack         time.Duration
	Reachability  string
	Unprotected   bool
	MethodID      string
	ObjectiveMin  time.Duration
	ObjectiveMax  time.Duration
	SingleTarget  bool
	InMethodRange bool
}
