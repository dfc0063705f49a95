package domain

import "time"

// Session is one contiguous interval the device is worn. A zero End means
// the session is still open. ID 0 marks a segment that has not been
// persisted yet; the store assigns identity on insert.
type Session struct {
	ID             int64
	Start          time.Time
	End            time.Time
	UnprotectedSex bool
}

func (s Session) Open() bool {
	return s.End.IsZero()
}

// EffectiveEnd is End for a closed session, now for an open one.
func (s Session) EffectiveEnd(now time.Time) time.Time {
	if s.Open() {
		return now
	}
	return s.End
}

func (s Session) Duration(now time.Time) time.Duration {
	return s.EffectiveEnd(now).Sub(s.Start)
}

// DayWindow returns the half-open window [start, end) of the local calendar
// day containing t. The window spans one calendar day, which is not always
// 24h in locations observing DST.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// Between reports start <= t < end. Day windows tile the timeline without
// gaps or double counting only if every membership test stays half-open.
func Between(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// SplitByDay decomposes a session into one segment per calendar day it
// touches, each clipped to its day window and keeping the unprotected-sex
// flag. The segment starting at the original start keeps the session
// identity; every other segment carries ID 0 until the store assigns one.
// An open session is bounded by now, so re-splitting later with a newer now
// extends coverage without changing the already-produced prefix.
func SplitByDay(s Session, now time.Time) []Session {
	end := s.EffectiveEnd(now)
	if !s.Start.Before(end) {
		return []Session{s}
	}
	var segments []Session
	cursor := s.Start
	for cursor.Before(end) {
		_, dayEnd := DayWindow(cursor)
		segEnd := dayEnd
		if end.Before(dayEnd) {
			segEnd = end
		}
		seg := Session{Start: cursor, End: segEnd, UnprotectedSex: s.UnprotectedSex}
		if cursor.Equal(s.Start) {
			seg.ID = s.ID
		}
		segments = append(segments, seg)
		cursor = dayEnd
	}
	return segments
}
