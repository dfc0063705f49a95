package domain

import "time"

// SessionsOnDay filters sessions whose start instant falls inside day's
// window, preserving input order.
func SessionsOnDay(sessions []Session, day time.Time) []Session {
	start, end := DayWindow(day)
	var out []Session
	for _, s := range sessions {
		if Between(s.Start, start, end) {
			out = append(out, s)
		}
	}
	return out
}

// TotalWearing sums session durations, counting open sessions up to now.
// No clipping happens here: callers must pre-split multi-day sessions with
// SplitByDay before aggregating per day.
func TotalWearing(sessions []Session, now time.Time) time.Duration {
	var total time.Duration
	for _, s := range sessions {
		total += s.Duration(now)
	}
	return total
}

// DayUnprotected reports whether any session on the given day carries the
// unprotected-sex flag. Sessions created later that day inherit it.
func DayUnprotected(sessions []Session, day time.Time) bool {
	for _, s := range SessionsOnDay(sessions, day) {
		if s.UnprotectedSex {
			return true
		}
	}
	return false
}
