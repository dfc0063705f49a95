package domain

import "time"

type RejectionReason string

const (
	RejectEndInFuture    RejectionReason = "end time cannot be in the future"
	RejectEndBeforeStart RejectionReason = "end time must be after start time"
	RejectOverlap        RejectionReason = "interval overlaps another session on the same day"
)

// ValidateEdit checks a candidate (start, end) for a session against the
// full session set. Every rule is evaluated so all violated rules are
// reported together; an empty result means the edit is acceptable. The
// overlap rule only runs when the candidate interval is well-formed.
//
// An open session's effective end for the overlap test is the end of its
// day window: it cannot be assumed to close before the day does.
func ValidateEdit(edited Session, candStart, candEnd time.Time, all []Session, now time.Time) []RejectionReason {
	var reasons []RejectionReason
	if candEnd.After(now) {
		reasons = append(reasons, RejectEndInFuture)
	}
	if !candEnd.After(candStart) {
		reasons = append(reasons, RejectEndBeforeStart)
		return reasons
	}
	for _, other := range SessionsOnDay(all, candStart) {
		if other.ID == edited.ID {
			continue
		}
		otherEnd := other.End
		if other.Open() {
			_, otherEnd = DayWindow(other.Start)
		}
		if candStart.Before(otherEnd) && other.Start.Before(candEnd) {
			reasons = append(reasons, RejectOverlap)
			break
		}
	}
	return reasons
}
