package dto

import "time"

type ProfileOutput struct {
	MethodID   string
	MethodName string
	StartedOn  time.Time
	Prefs      PrefsOutput
}

type PrefsOutput struct {
	ImminentMiss     bool
	TwoHoursLeft     bool
	MinReached       bool
	MaxReached       bool
	MaxExtraExceeded bool
}

type InitInput struct {
	MethodID  string
	StartedOn time.Time
}

type SetPrefsInput struct {
	ImminentMiss     *bool
	TwoHoursLeft     *bool
	MinReached       *bool
	MaxReached       *bool
	MaxExtraExceeded *bool
}

type MethodOutput struct {
	ID           string
	Name         string
	MinExtra     time.Duration
	Min          time.Duration
	Max          time.Duration
	MaxExtra     time.Duration
	SingleTarget bool
}
