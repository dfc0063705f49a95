package domain

import (
	"fmt"
	"time"

	"wearlog/internal/modules/profile/domain"
	tracking "wearlog/internal/modules/tracking/domain"
)

type IntentKind string

const (
	KindImminentMiss     IntentKind = "imminent-miss"
	KindTwoHoursLeft     IntentKind = "two-hours-left"
	KindMinReached       IntentKind = "min-reached"
	KindMaxReached       IntentKind = "max-reached"
	KindMaxExtraExceeded IntentKind = "max-extra-exceeded"
)

// Intent is a notification the engine wants delivered.
type Intent struct {
	Kind  IntentKind
	Title string
	Body  string
	At    time.Time
}

// Bands tune the decision windows. A poll interval longer than a band can
// step over it without firing, so callers keep their interval at or below
// the smallest window.
type Bands struct {
	// ImminentWindow is how close to the point of no return the day may get
	// before the imminent-miss alert fires.
	ImminentWindow time.Duration
	// TwoHourMark is the slack left in the day at which the reminder fires.
	// Slack counts usable time, so time spent with the device off shrinks
	// it even while the wear total stands still.
	TwoHourMark time.Duration
	// ReachedWindow bounds the threshold-crossing bands so a crossing is
	// announced once and then goes quiet.
	ReachedWindow time.Duration
}

func DefaultBands() Bands {
	return Bands{
		ImminentWindow: 10 * time.Minute,
		TwoHourMark:    2 * time.Hour,
		ReachedWindow:  10 * time.Minute,
	}
}

// Decide picks at most one notification for the current instant. Rungs are
// checked most-urgent first and the first hit wins; each rung is gated by
// the matching preference toggle. Thresholds use half-open bands
// [threshold, threshold+window) so repeated polls inside one band agree
// and polls after it stay silent.
func Decide(now time.Time, sessions []tracking.Session, objective tracking.Objective, prefs domain.Prefs, bands Bands) (Intent, bool) {
	var view []tracking.Session
	for _, s := range sessions {
		view = append(view, tracking.SplitByDay(s, now)...)
	}
	total := tracking.TotalWearing(tracking.SessionsOnDay(view, now), now)
	slack, reach := tracking.TimeUntilUnreachable(objective.Min, now, view, now)

	if prefs.ImminentMiss && reach == tracking.Reachable && slack < bands.ImminentWindow {
		return Intent{
			Kind:  KindImminentMiss,
			Title: "Objective about to slip away",
			Body:  fmt.Sprintf("Only %s of slack left to reach today's %s objective.", round(slack), round(objective.Min)),
			At:    now,
		}, true
	}

	if prefs.TwoHoursLeft && reach == tracking.Reachable && inBand(slack, bands.TwoHourMark, bands.ReachedWindow) {
		return Intent{
			Kind:  KindTwoHoursLeft,
			Title: "Two hours to go",
			Body:  fmt.Sprintf("%s left today to finish the %s objective.", round(slack), round(objective.Min)),
			At:    now,
		}, true
	}

	if prefs.MinReached && inBand(total, objective.Min, bands.ReachedWindow) {
		return Intent{
			Kind:  KindMinReached,
			Title: "Objective reached",
			Body:  fmt.Sprintf("Today's %s objective is met. You can remove the device.", round(objective.Min)),
			At:    now,
		}, true
	}

	if prefs.MaxReached && !objective.SingleTarget() && inBand(total, objective.Max, bands.ReachedWindow) {
		return Intent{
			Kind:  KindMaxReached,
			Title: "Comfort range complete",
			Body:  fmt.Sprintf("You have worn the device for %s today, the top of the recommended range.", round(objective.Max)),
			At:    now,
		}, true
	}

	if prefs.MaxExtraExceeded && inBand(total, objective.MaxExtra, bands.ReachedWindow) {
		return Intent{
			Kind:  KindMaxExtraExceeded,
			Title: "Maximum wear time exceeded",
			Body:  fmt.Sprintf("Today's wear time passed %s. Remove the device.", round(objective.MaxExtra)),
			At:    now,
		}, true
	}

	return Intent{}, false
}

func inBand(value, threshold, window time.Duration) bool {
	return value >= threshold && value < threshold+window
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Minute)
}
