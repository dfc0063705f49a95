package domain

import "time"

// Reachability tags a TimeUntilUnreachable result so the three outcomes
// cannot be confused with a plain duration.
type Reachability int

const (
	// Reachable means the objective can still be met today; the slack says
	// for how much longer.
	Reachable Reachability = iota
	// Reached means the day's wear time already exceeds the objective.
	Reached
	// Unreachable means the day has too little time left for the objective,
	// or now falls outside the day's window entirely.
	Unreachable
)

func (r Reachability) String() string {
	switch r {
	case Reachable:
		return "reachable"
	case Reached:
		return "reached"
	default:
		return "unreachable"
	}
}

// RemainingToObjective is the objective minus the day's accumulated wear
// time. Negative once the objective is exceeded.
func RemainingToObjective(objective time.Duration, day time.Time, sessions []Session, now time.Time) time.Duration {
	return objective - TotalWearing(SessionsOnDay(sessions, day), now)
}

// TimeUntilUnreachable computes how much longer the objective stays
// attainable on the given day: the day time left minus the unworn time
// still required. The instant the slack hits zero the objective can no
// longer be met within the day.
func TimeUntilUnreachable(objective time.Duration, day time.Time, sessions []Session, now time.Time) (time.Duration, Reachability) {
	total := TotalWearing(SessionsOnDay(sessions, day), now)
	if total > objective {
		return 0, Reached
	}
	dayStart, dayEnd := DayWindow(day)
	if !Between(now, dayStart, dayEnd) {
		return 0, Unreachable
	}
	slack := dayEnd.Sub(now) - (objective - total)
	if slack <= 0 {
		return 0, Unreachable
	}
	return slack, Reachable
}
