package domain

import (
	"fmt"
	"time"

	tracking "wearlog/internal/modules/tracking/domain"
)

// Method is one contraception method from the catalog, carrying the
// objective quadruple that drives classification.
type Method struct {
	ID        string
	Name      string
	Objective tracking.Objective
}

func (m Method) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("method id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("method name is required")
	}
	if err := m.Objective.Validate(); err != nil {
		return fmt.Errorf("method %s: %w", m.ID, err)
	}
	return nil
}

// Prefs toggles the individual alert rungs. All enabled by default.
type Prefs struct {
	ImminentMiss     bool
	TwoHoursLeft     bool
	MinReached       bool
	MaxReached       bool
	MaxExtraExceeded bool
}

func DefaultPrefs() Prefs {
	return Prefs{
		ImminentMiss:     true,
		TwoHoursLeft:     true,
		MinReached:       true,
		MaxReached:       true,
		MaxExtraExceeded: true,
	}
}

// Profile is the single tracked user: the active method, the day
// contraception started, and the alert preferences.
type Profile struct {
	MethodID  string
	StartedOn time.Time
	Prefs     Prefs
}

func (p Profile) Validate() error {
	if p.MethodID == "" {
		return fmt.Errorf("profile method is required")
	}
	return nil
}

// InContraceptionRange reports whether day falls on or after the calendar
// day the method was started. Days outside the range carry no objective.
func (p Profile) InContraceptionRange(day time.Time) bool {
	if p.StartedOn.IsZero() {
		return false
	}
	dayStart, _ := tracking.DayWindow(day)
	startDay, _ := tracking.DayWindow(p.StartedOn)
	return !dayStart.Before(startDay)
}
