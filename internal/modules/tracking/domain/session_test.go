package domain_test

import (
	"testing"
	"time"

	"wearlog/internal/modules/tracking/domain"
)

func day(t *testing.T, y int, m time.Month, d, hh, mm int) time.Time {
	t.Helper()
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestDayWindowTilesTheTimeline(t *testing.T) {
	t.Parallel()
	noon := day(t, 2026, 3, 14, 12, 30)
	start, end := domain.DayWindow(noon)
	if !start.Equal(day(t, 2026, 3, 14, 0, 0)) {
		t.Fatalf("unexpected day start: %v", start)
	}
	if !end.Equal(day(t, 2026, 3, 15, 0, 0)) {
		t.Fatalf("unexpected day end: %v", end)
	}

	// Midnight belongs to the day it starts.
	mStart, mEnd := domain.DayWindow(start)
	if !mStart.Equal(start) || !mEnd.Equal(end) {
		t.Fatalf("midnight must open its own day: [%v, %v)", mStart, mEnd)
	}
	if !domain.Between(start, start, end) {
		t.Fatalf("day start must be inside its own window")
	}
	if domain.Between(end, start, end) {
		t.Fatalf("day end must belong to the next window")
	}
}

func TestSplitByDaySingleDayReturnsInputUnchanged(t *testing.T) {
	t.Parallel()
	s := domain.Session{ID: 7, Start: day(t, 2026, 3, 14, 8, 0), End: day(t, 2026, 3, 14, 8, 5), UnprotectedSex: true}
	segments := domain.SplitByDay(s, day(t, 2026, 3, 14, 12, 0))
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0] != s {
		t.Fatalf("single-day split must return the input, got %+v", segments[0])
	}
}

func TestSplitByDayAcrossMidnight(t *testing.T) {
	t.Parallel()
	// 23:00 day 1 to 02:00 day 2 splits into 1h + 2h segments.
	s := domain.Session{ID: 3, Start: day(t, 2026, 3, 14, 23, 0), End: day(t, 2026, 3, 15, 2, 0)}
	now := day(t, 2026, 3, 15, 10, 0)
	segments := domain.SplitByDay(s, now)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	a, b := segments[0], segments[1]
	if a.ID != 3 {
		t.Fatalf("first segment must keep the original identity, got %d", a.ID)
	}
	if b.ID != 0 {
		t.Fatalf("synthesized segment must carry the unassigned sentinel, got %d", b.ID)
	}
	if a.Duration(now) != time.Hour || b.Duration(now) != 2*time.Hour {
		t.Fatalf("expected 1h and 2h segments, got %v and %v", a.Duration(now), b.Duration(now))
	}
	if !a.End.Equal(day(t, 2026, 3, 15, 0, 0)) || !b.Start.Equal(day(t, 2026, 3, 15, 0, 0)) {
		t.Fatalf("segments must abut at midnight: %v / %v", a.End, b.Start)
	}
}

func TestSplitByDayDurationsSumToOriginal(t *testing.T) {
	t.Parallel()
	s := domain.Session{ID: 1, Start: day(t, 2026, 3, 12, 17, 30), End: day(t, 2026, 3, 16, 4, 15), UnprotectedSex: true}
	now := day(t, 2026, 3, 16, 12, 0)
	segments := domain.SplitByDay(s, now)
	if len(segments) != 5 {
		t.Fatalf("expected 5 day segments, got %d", len(segments))
	}
	var sum time.Duration
	for _, seg := range segments {
		if seg.UnprotectedSex != s.UnprotectedSex {
			t.Fatalf("segment lost the unprotected flag: %+v", seg)
		}
		segStart, segEnd := domain.DayWindow(seg.Start)
		if seg.Start.Before(segStart) || seg.End.After(segEnd) {
			t.Fatalf("segment escapes its day window: %+v", seg)
		}
		sum += seg.Duration(now)
	}
	if sum != s.Duration(now) {
		t.Fatalf("segment durations must sum to the original: %v vs %v", sum, s.Duration(now))
	}
}

func TestSplitByDayEndingExactlyAtMidnight(t *testing.T) {
	t.Parallel()
	s := domain.Session{ID: 9, Start: day(t, 2026, 3, 14, 22, 0), End: day(t, 2026, 3, 15, 0, 0)}
	segments := domain.SplitByDay(s, day(t, 2026, 3, 15, 9, 0))
	if len(segments) != 1 {
		t.Fatalf("session ending at midnight must produce one segment, got %d", len(segments))
	}
	if !segments[0].End.Equal(s.End) {
		t.Fatalf("segment must end at midnight, got %v", segments[0].End)
	}
}

func TestSplitByDayOpenSessionExtendsWithNow(t *testing.T) {
	t.Parallel()
	s := domain.Session{ID: 4, Start: day(t, 2026, 3, 14, 20, 0)}

	early := domain.SplitByDay(s, day(t, 2026, 3, 14, 23, 0))
	if len(early) != 1 {
		t.Fatalf("expected 1 segment before midnight, got %d", len(early))
	}

	late := domain.SplitByDay(s, day(t, 2026, 3, 16, 6, 0))
	if len(late) != 3 {
		t.Fatalf("expected 3 segments after two midnights, got %d", len(late))
	}
	// The already-closed prefix is unchanged by the later reference instant.
	if !late[0].Start.Equal(s.Start) || !late[0].End.Equal(day(t, 2026, 3, 15, 0, 0)) || late[0].ID != 4 {
		t.Fatalf("first segment changed across re-splits: %+v", late[0])
	}
}

func TestSessionsOnDayFiltersByStartAndKeepsOrder(t *testing.T) {
	t.Parallel()
	sessions := []domain.Session{
		{ID: 1, Start: day(t, 2026, 3, 14, 8, 0), End: day(t, 2026, 3, 14, 9, 0)},
		{ID: 2, Start: day(t, 2026, 3, 15, 8, 0), End: day(t, 2026, 3, 15, 9, 0)},
		{ID: 3, Start: day(t, 2026, 3, 14, 10, 0), End: day(t, 2026, 3, 14, 11, 0)},
	}
	got := domain.SessionsOnDay(sessions, day(t, 2026, 3, 14, 15, 0))
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("expected sessions 1 and 3 in input order, got %+v", got)
	}
}

func TestTotalWearingIsAdditiveOverSplitSegments(t *testing.T) {
	t.Parallel()
	s := domain.Session{ID: 1, Start: day(t, 2026, 3, 14, 23, 0), End: day(t, 2026, 3, 15, 2, 0)}
	now := day(t, 2026, 3, 15, 12, 0)
	segments := domain.SplitByDay(s, now)

	perDay := domain.TotalWearing(domain.SessionsOnDay(segments, day(t, 2026, 3, 14, 1, 0)), now) +
		domain.TotalWearing(domain.SessionsOnDay(segments, day(t, 2026, 3, 15, 1, 0)), now)
	if perDay != s.Duration(now) {
		t.Fatalf("per-day totals must sum to the unsplit duration: %v vs %v", perDay, s.Duration(now))
	}
}

func TestTotalWearingCountsOpenSessionUpToNow(t *testing.T) {
	t.Parallel()
	open := domain.Session{ID: 2, Start: day(t, 2026, 3, 14, 8, 0)}
	now := day(t, 2026, 3, 14, 8, 45)
	if got := domain.TotalWearing([]domain.Session{open}, now); got != 45*time.Minute {
		t.Fatalf("expected 45m for open session, got %v", got)
	}
}

func TestDayUnprotected(t *testing.T) {
	t.Parallel()
	sessions := []domain.Session{
		{ID: 1, Start: day(t, 2026, 3, 14, 8, 0), End: day(t, 2026, 3, 14, 9, 0)},
		{ID: 2, Start: day(t, 2026, 3, 14, 10, 0), End: day(t, 2026, 3, 14, 11, 0), UnprotectedSex: true},
	}
	if !domain.DayUnprotected(sessions, day(t, 2026, 3, 14, 20, 0)) {
		t.Fatalf("day with a flagged session must report unprotected")
	}
	if domain.DayUnprotected(sessions, day(t, 2026, 3, 15, 20, 0)) {
		t.Fatalf("day without flagged sessions must not report unprotected")
	}
}
