package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wearlog/internal/modules/alert/dto"
	alertin "wearlog/internal/modules/alert/port/in"
	"wearlog/internal/modules/alert/service"
	profiledomain "wearlog/internal/modules/profile/domain"
	profiledto "wearlog/internal/modules/profile/dto"
	profilein "wearlog/internal/modules/profile/port/in"
	tracking "wearlog/internal/modules/tracking/domain"
	trackingin "wearlog/internal/modules/tracking/port/in"
	apperrors "wearlog/internal/platform/errors"
)

type Interactor struct {
	svc      *service.AlertService
	tracking trackingin.Usecase
	profile  profilein.Usecase
}

func NewInteractor(svc *service.AlertService, trackingUC trackingin.Usecase, profileUC profilein.Usecase) alertin.Usecase {
	return &Interactor{svc: svc, tracking: trackingUC, profile: profileUC}
}

// Poll runs one evaluation tick: catch up a session left open past
// midnight, then feed the current picture through the decision ladder.
func (i *Interactor) Poll(ctx context.Context) (dto.PollOutput, error) {
	if _, err := i.tracking.Rollover(ctx); err != nil &&
		!errors.Is(err, apperrors.ErrRolloverNotDue) &&
		!errors.Is(err, apperrors.ErrNoOpenSession) {
		return dto.PollOutput{}, fmt.Errorf("rollover: %w", err)
	}

	now := i.svc.Now()
	prof, err := i.profile.Show(ctx)
	if errors.Is(err, apperrors.ErrNoProfile) {
		return dto.PollOutput{Skipped: "no profile configured"}, nil
	}
	if err != nil {
		return dto.PollOutput{}, err
	}
	inRange, err := i.profile.InRange(ctx, now)
	if err != nil {
		return dto.PollOutput{}, err
	}
	if !inRange {
		return dto.PollOutput{Skipped: "outside the contraception date range"}, nil
	}
	method, err := i.profile.ObjectiveFor(ctx, prof.MethodID)
	if err != nil {
		return dto.PollOutput{}, err
	}

	snapshot, err := i.tracking.Snapshot(ctx)
	if err != nil {
		return dto.PollOutput{}, err
	}
	sessions := make([]tracking.Session, 0, len(snapshot))
	for _, s := range snapshot {
		sessions = append(sessions, tracking.Session{ID: s.ID, Start: s.Start, End: s.End, UnprotectedSex: s.UnprotectedSex})
	}

	objective := tracking.Objective{MinExtra: method.MinExtra, Min: method.Min, Max: method.Max, MaxExtra: method.MaxExtra}
	prefs := toPrefs(prof.Prefs)
	intent, ok := i.svc.Evaluate(now, sessions, objective, prefs)
	if !ok {
		return dto.PollOutput{}, nil
	}
	delivered, err := i.svc.Deliver(ctx, intent)
	if err != nil {
		return dto.PollOutput{}, err
	}
	return dto.PollOutput{
		Delivered: delivered,
		Intent: dto.IntentOutput{
			Kind:  string(intent.Kind),
			Title: intent.Title,
			Body:  intent.Body,
			At:    intent.At,
		},
	}, nil
}

// Watch polls on a fixed interval until the context is cancelled. The
// interval must not exceed the smallest decision band or crossings could
// be stepped over unannounced.
func (i *Interactor) Watch(ctx context.Context, interval time.Duration, sink func(dto.PollOutput)) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", interval)
	}
	if min := i.svc.Bands().ImminentWindow; interval > min {
		return fmt.Errorf("watch interval %s exceeds the smallest decision band %s", interval, min)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			out, err := i.Poll(ctx)
			if err != nil {
				return err
			}
			if sink != nil {
				sink(out)
			}
		}
	}
}

func (i *Interactor) Doctor(ctx context.Context) (dto.DoctorOutput, error) {
	desc, err := i.svc.Describe(ctx)
	if err != nil {
		return dto.DoctorOutput{OK: false, Error: err.Error()}, nil
	}
	return dto.DoctorOutput{Name: desc.Name, Version: desc.Version, OK: true}, nil
}

func toPrefs(p profiledto.PrefsOutput) profiledomain.Prefs {
	return profiledomain.Prefs{
		ImminentMiss:     p.ImminentMiss,
		TwoHoursLeft:     p.TwoHoursLeft,
		MinReached:       p.MinReached,
		MaxReached:       p.MaxReached,
		MaxExtraExceeded: p.MaxExtraExceeded,
	}
}
