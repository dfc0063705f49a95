package usecase_test

import (
	"context"
	"testing"
	"time"

	"wearlog/internal/modules/alert/domain"
	alertout "wearlog/internal/modules/alert/port/out"
	"wearlog/internal/modules/alert/service"
	"wearlog/internal/modules/alert/usecase"
	profiledto "wearlog/internal/modules/profile/dto"
	trackingdto "wearlog/internal/modules/tracking/dto"
	apperrors "wearlog/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

type fakeTracking struct {
	sessions  []trackingdto.SessionOutput
	rollovers int
}

func (f *fakeTracking) Start(context.Context, trackingdto.StartInput) (trackingdto.SessionOutput, error) {
	return trackingdto.SessionOutput{}, nil
}

func (f *fakeTracking) Stop(context.Context) (trackingdto.StopOutput, error) {
	return trackingdto.StopOutput{}, nil
}

func (f *fakeTracking) Active(context.Context) (trackingdto.SessionOutput, error) {
	return trackingdto.SessionOutput{}, apperrors.ErrNoOpenSession
}

func (f *fakeTracking) Rollover(context.Context) (trackingdto.RolloverOutput, error) {
	f.rollovers++
	return trackingdto.RolloverOutput{}, apperrors.ErrRolloverNotDue
}

func (f *fakeTracking) Edit(context.Context, trackingdto.EditInput) ([]trackingdto.SessionOutput, error) {
	return nil, nil
}

func (f *fakeTracking) Delete(context.Context, int64) error { return nil }

func (f *fakeTracking) MarkUnprotected(context.Context, time.Time, bool) (int, error) {
	return 0, nil
}

func (f *fakeTracking) ListDay(context.Context, time.Time) ([]trackingdto.SessionOutput, error) {
	return nil, nil
}

func (f *fakeTracking) DayStatus(context.Context, time.Time) (trackingdto.DayStatusOutput, error) {
	return trackingdto.DayStatusOutput{}, nil
}

func (f *fakeTracking) Snapshot(context.Context) ([]trackingdto.SessionOutput, error) {
	return f.sessions, nil
}

type fakeProfile struct {
	hasProfile bool
	inRange    bool
}

func (f fakeProfile) Init(context.Context, profiledto.InitInput) (profiledto.ProfileOutput, error) {
	return profiledto.ProfileOutput{}, nil
}

func (f fakeProfile) Show(context.Context) (profiledto.ProfileOutput, error) {
	if !f.hasProfile {
		return profiledto.ProfileOutput{}, apperrors.ErrNoProfile
	}
	return profiledto.ProfileOutput{
		MethodID: "andro-switch",
		Prefs: profiledto.PrefsOutput{
			ImminentMiss: true, TwoHoursLeft: true, MinReached: true,
			MaxReached: true, MaxExtraExceeded: true,
		},
	}, nil
}

func (f fakeProfile) SetMethod(context.Context, string) (profiledto.ProfileOutput, error) {
	return profiledto.ProfileOutput{}, nil
}

func (f fakeProfile) SetPrefs(context.Context, profiledto.SetPrefsInput) (profiledto.ProfileOutput, error) {
	return profiledto.ProfileOutput{}, nil
}

func (f fakeProfile) Methods(context.Context) ([]profiledto.MethodOutput, error) {
	return nil, nil
}

func (f fakeProfile) ObjectiveFor(context.Context, string) (profiledto.MethodOutput, error) {
	return profiledto.MethodOutput{
		ID:           "andro-switch",
		MinExtra:     18 * time.Hour,
		Min:          20 * time.Hour,
		Max:          20 * time.Hour,
		MaxExtra:     22 * time.Hour,
		SingleTarget: true,
	}, nil
}

func (f fakeProfile) InRange(context.Context, time.Time) (bool, error) {
	return f.inRange, nil
}

type captureNotifier struct {
	intents []domain.Intent
}

func (n *captureNotifier) Notify(_ context.Context, intent domain.Intent) error {
	n.intents = append(n.intents, intent)
	return nil
}

func (n *captureNotifier) Describe(_ context.Context) (alertout.Description, error) {
	return alertout.Description{Name: "capture", Version: "test"}, nil
}

func TestPollSkipsWithoutProfile(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.March, 12, 20, 0, 0, 0, time.UTC)
	svc := service.NewAlertService(fakeClock{now: now}, &captureNotifier{}, domain.DefaultBands())
	uc := usecase.NewInteractor(svc, &fakeTracking{}, fakeProfile{})

	out, err := uc.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if out.Skipped == "" || out.Delivered {
		t.Fatalf("out = %+v, want a skipped poll", out)
	}
}

func TestPollSkipsOutsideRange(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.March, 12, 20, 0, 0, 0, time.UTC)
	svc := service.NewAlertService(fakeClock{now: now}, &captureNotifier{}, domain.DefaultBands())
	uc := usecase.NewInteractor(svc, &fakeTracking{}, fakeProfile{hasProfile: true})

	out, err := uc.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if out.Skipped == "" {
		t.Fatalf("out = %+v, want a skipped poll", out)
	}
}

func TestPollDeliversMinReached(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.March, 12, 21, 0, 0, 0, time.UTC)
	notifier := &captureNotifier{}
	svc := service.NewAlertService(fakeClock{now: now}, notifier, domain.DefaultBands())
	tracking := &fakeTracking{sessions: []trackingdto.SessionOutput{
		{ID: 1, Start: now.Add(-20*time.Hour - time.Minute), End: now},
	}}
	uc := usecase.NewInteractor(svc, tracking, fakeProfile{hasProfile: true, inRange: true})

	out, err := uc.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if !out.Delivered {
		t.Fatalf("out = %+v, want a delivery", out)
	}
	if out.Intent.Kind != string(domain.KindMinReached) {
		t.Fatalf("kind = %q, want %s", out.Intent.Kind, domain.KindMinReached)
	}
	if tracking.rollovers != 1 {
		t.Fatalf("poll must attempt a rollover first, got %d", tracking.rollovers)
	}

	// The next tick inside the same band stays quiet.
	out, err = uc.Poll(context.Background())
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if out.Delivered {
		t.Fatalf("repeat delivery must be suppressed")
	}
	if len(notifier.intents) != 1 {
		t.Fatalf("notifier saw %d intents, want 1", len(notifier.intents))
	}
}

func TestPollQuietWhenNothingMatches(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.March, 12, 12, 0, 0, 0, time.UTC)
	svc := service.NewAlertService(fakeClock{now: now}, &captureNotifier{}, domain.DefaultBands())
	tracking := &fakeTracking{sessions: []trackingdto.SessionOutput{
		{ID: 1, Start: now.Add(-4 * time.Hour), End: now},
	}}
	uc := usecase.NewInteractor(svc, tracking, fakeProfile{hasProfile: true, inRange: true})

	out, err := uc.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if out.Delivered || out.Skipped != "" {
		t.Fatalf("out = %+v, want a quiet poll", out)
	}
}

func TestWatchRejectsCoarseInterval(t *testing.T) {
	t.Parallel()
	svc := service.NewAlertService(fakeClock{now: time.Now()}, &captureNotifier{}, domain.DefaultBands())
	uc := usecase.NewInteractor(svc, &fakeTracking{}, fakeProfile{})

	if err := uc.Watch(context.Background(), time.Hour, nil); err == nil {
		t.Fatalf("expected an interval validation error")
	}
	if err := uc.Watch(context.Background(), 0, nil); err == nil {
		t.Fatalf("expected a positive-interval error")
	}
}

func TestDoctorReportsChannel(t *testing.T) {
	t.Parallel()
	svc := service.NewAlertService(fakeClock{now: time.Now()}, &captureNotifier{}, domain.DefaultBands())
	uc := usecase.NewInteractor(svc, &fakeTracking{}, fakeProfile{})

	out, err := uc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if !out.OK || out.Name != "capture" {
		t.Fatalf("out = %+v, want OK capture", out)
	}
}
