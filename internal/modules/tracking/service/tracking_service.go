package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wearlog/internal/modules/tracking/domain"
	trackingout "wearlog/internal/modules/tracking/port/out"
	"wearlog/internal/platform/clock"
	apperrors "wearlog/internal/platform/errors"
	"wearlog/internal/platform/tx"
)

// TrackingService owns the session lifecycle: it feeds store snapshots
// through the pure interval engine and turns the results back into store
// commands. Multi-row writes go through the transaction manager.
type TrackingService struct {
	clock clock.Clock
	store trackingout.SessionStore
	tx    tx.Manager
}

func NewTrackingService(clock clock.Clock, store trackingout.SessionStore, txm tx.Manager) *TrackingService {
	return &TrackingService{clock: clock, store: store, tx: txm}
}

func (s *TrackingService) Now() time.Time {
	return s.clock.Now()
}

// Start opens a new session at the current instant. A day that already has
// a flagged session passes the unprotected flag on to the new session.
func (s *TrackingService) Start(ctx context.Context, unprotected bool) (domain.Session, error) {
	now := s.clock.Now()
	if _, err := s.store.FirstOpen(ctx); err == nil {
		return domain.Session{}, apperrors.ErrOpenSessionExists
	} else if !errors.Is(err, apperrors.ErrNoOpenSession) {
		return domain.Session{}, err
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	session := domain.Session{
		Start:          now,
		UnprotectedSex: unprotected || domain.DayUnprotected(all, now),
	}
	id, err := s.store.Create(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("create session: %w", err)
	}
	session.ID = id
	return session, nil
}

// Stop closes the open session. When the interval crossed one or more day
// boundaries it is persisted as per-day segments: the original row keeps
// the first segment, the store assigns identity to the rest.
func (s *TrackingService) Stop(ctx context.Context) ([]domain.Session, error) {
	now := s.clock.Now()
	open, err := s.store.FirstOpen(ctx)
	if err != nil {
		return nil, err
	}
	open.End = now
	segments := domain.SplitByDay(open, now)
	if err := s.persistSegments(ctx, segments); err != nil {
		return nil, err
	}
	return segments, nil
}

func (s *TrackingService) Active(ctx context.Context) (domain.Session, error) {
	return s.store.FirstOpen(ctx)
}

// Rollover closes the open session at its day boundary and reopens it for
// the current day, keeping the unprotected flag. Close-then-reopen is one
// transaction so a poll tick can never observe the half-rolled state.
func (s *TrackingService) Rollover(ctx context.Context) ([]domain.Session, domain.Session, error) {
	now := s.clock.Now()
	open, err := s.store.FirstOpen(ctx)
	if err != nil {
		return nil, domain.Session{}, err
	}
	dayStart, dayEnd := domain.DayWindow(open.Start)
	if domain.Between(now, dayStart, dayEnd) {
		return nil, domain.Session{}, apperrors.ErrRolloverNotDue
	}

	open.End = now
	segments := domain.SplitByDay(open, now)
	if len(segments) < 2 {
		// now sits exactly on the boundary: no time of the new day has
		// elapsed yet, so there is nothing to reopen.
		return nil, domain.Session{}, apperrors.ErrRolloverNotDue
	}
	last := len(segments) - 1
	segments[last].End = time.Time{}
	if err := s.persistSegments(ctx, segments); err != nil {
		return nil, domain.Session{}, err
	}
	return segments[:last], segments[last], nil
}

// Edit applies a corrected (start, end) to an existing session, gated by
// the overlap validator. On rejection nothing is written and every violated
// rule is reported.
func (s *TrackingService) Edit(ctx context.Context, input domain.Session) ([]domain.Session, error) {
	now := s.clock.Now()
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	var current *domain.Session
	for i := range all {
		if all[i].ID == input.ID {
			current = &all[i]
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("session %d: %w", input.ID, apperrors.ErrNotFound)
	}

	if reasons := domain.ValidateEdit(*current, input.Start, input.End, all, now); len(reasons) > 0 {
		verr := &apperrors.ValidationError{}
		for _, r := range reasons {
			verr.Reasons = append(verr.Reasons, string(r))
		}
		return nil, verr
	}

	segments := domain.SplitByDay(input, now)
	if err := s.persistSegments(ctx, segments); err != nil {
		return nil, err
	}
	return segments, nil
}

func (s *TrackingService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// MarkUnprotected sets or clears the unprotected-sex flag on every session
// of the given day and returns how many were touched.
func (s *TrackingService) MarkUnprotected(ctx context.Context, day time.Time, flag bool) (int, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	targets := domain.SessionsOnDay(all, day)
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		for _, session := range targets {
			session.UnprotectedSex = flag
			if err := s.store.Update(ctx, session); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(targets), nil
}

func (s *TrackingService) List(ctx context.Context) ([]domain.Session, error) {
	return s.store.List(ctx)
}

func (s *TrackingService) persistSegments(ctx context.Context, segments []domain.Session) error {
	return s.tx.Within(ctx, func(ctx context.Context) error {
		for i, segment := range segments {
			if segment.ID != 0 {
				if err := s.store.Update(ctx, segment); err != nil {
					return fmt.Errorf("update segment: %w", err)
				}
				continue
			}
			id, err := s.store.Create(ctx, segment)
			if err != nil {
				return fmt.Errorf("create segment: %w", err)
			}
			segments[i].ID = id
		}
		return nil
	})
}
