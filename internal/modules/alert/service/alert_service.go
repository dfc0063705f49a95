package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wearlog/internal/modules/alert/domain"
	alertout "wearlog/internal/modules/alert/port/out"
	profiledomain "wearlog/internal/modules/profile/domain"
	tracking "wearlog/internal/modules/tracking/domain"
	"wearlog/internal/platform/clock"
)

// AlertService evaluates the decision ladder and pushes the winning intent
// to the notifier. It remembers the last delivery so a poll loop sitting
// inside one decision band does not repeat itself.
type AlertService struct {
	clock    clock.Clock
	notifier alertout.Notifier
	bands    domain.Bands

	mu       sync.Mutex
	lastKind domain.IntentKind
	lastDay  time.Time
}

func NewAlertService(clk clock.Clock, notifier alertout.Notifier, bands domain.Bands) *AlertService {
	return &AlertService{clock: clk, notifier: notifier, bands: bands}
}

func (s *AlertService) Now() time.Time {
	return s.clock.Now()
}

func (s *AlertService) Bands() domain.Bands {
	return s.bands
}

func (s *AlertService) Evaluate(now time.Time, sessions []tracking.Session, objective tracking.Objective, prefs profiledomain.Prefs) (domain.Intent, bool) {
	return domain.Decide(now, sessions, objective, prefs, s.bands)
}

// Deliver sends the intent unless the same kind was already delivered on
// the same day. It reports whether a notification actually went out.
func (s *AlertService) Deliver(ctx context.Context, intent domain.Intent) (bool, error) {
	day, _ := tracking.DayWindow(intent.At)
	s.mu.Lock()
	duplicate := s.lastKind == intent.Kind && s.lastDay.Equal(day)
	s.mu.Unlock()
	if duplicate {
		return false, nil
	}
	if err := s.notifier.Notify(ctx, intent); err != nil {
		return false, fmt.Errorf("notify %s: %w", intent.Kind, err)
	}
	s.mu.Lock()
	s.lastKind = intent.Kind
	s.lastDay = day
	s.mu.Unlock()
	return true, nil
}

func (s *AlertService) Describe(ctx context.Context) (alertout.Description, error) {
	return s.notifier.Describe(ctx)
}
