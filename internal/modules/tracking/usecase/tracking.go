package usecase

import (
	"context"
	"errors"
	"time"

	profilein "wearlog/internal/modules/profile/port/in"
	"wearlog/internal/modules/tracking/domain"
	"wearlog/internal/modules/tracking/dto"
	trackingin "wearlog/internal/modules/tracking/port/in"
	trackingout "wearlog/internal/modules/tracking/port/out"
	"wearlog/internal/modules/tracking/service"
	apperrors "wearlog/internal/platform/errors"
)

type Interactor struct {
	svc     *service.TrackingService
	profile profilein.Usecase
	store   trackingout.SessionStore
}

func NewInteractor(svc *service.TrackingService, profile profilein.Usecase, store trackingout.SessionStore) trackingin.Usecase {
	return &Interactor{svc: svc, profile: profile, store: store}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error) {
	session, err := i.svc.Start(ctx, input.Unprotected)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return i.toOutput(session), nil
}

func (i *Interactor) Stop(ctx context.Context) (dto.StopOutput, error) {
	segments, err := i.svc.Stop(ctx)
	if err != nil {
		return dto.StopOutput{}, err
	}
	return dto.StopOutput{Segments: i.toOutputs(segments)}, nil
}

func (i *Interactor) Active(ctx context.Context) (dto.SessionOutput, error) {
	session, err := i.svc.Active(ctx)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return i.toOutput(session), nil
}

func (i *Interactor) Rollover(ctx context.Context) (dto.RolloverOutput, error) {
	closed, reopened, err := i.svc.Rollover(ctx)
	if err != nil {
		return dto.RolloverOutput{}, err
	}
	return dto.RolloverOutput{Closed: i.toOutputs(closed), Reopened: i.toOutput(reopened)}, nil
}

func (i *Interactor) Edit(ctx context.Context, input dto.EditInput) ([]dto.SessionOutput, error) {
	segments, err := i.svc.Edit(ctx, domain.Session{
		ID:             input.ID,
		Start:          input.Start,
		End:            input.End,
		UnprotectedSex: input.Unprotected,
	})
	if err != nil {
		return nil, err
	}
	return i.toOutputs(segments), nil
}

func (i *Interactor) Delete(ctx context.Context, id int64) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) MarkUnprotected(ctx context.Context, day time.Time, flag bool) (int, error) {
	return i.svc.MarkUnprotected(ctx, day, flag)
}

func (i *Interactor) ListDay(ctx context.Context, day time.Time) ([]dto.SessionOutput, error) {
	start, end := domain.DayWindow(day)
	sessions, err := i.store.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return i.toOutputs(sessions), nil
}

// DayStatus aggregates one day's wear time and classifies it against the
// active method's objective. Stored sessions that span day boundaries are
// split before aggregating so each day only counts its own share.
func (i *Interactor) DayStatus(ctx context.Context, day time.Time) (dto.DayStatusOutput, error) {
	now := i.svc.Now()
	all, err := i.store.List(ctx)
	if err != nil {
		return dto.DayStatusOutput{}, err
	}
	var view []domain.Session
	for _, s := range all {
		view = append(view, domain.SplitByDay(s, now)...)
	}
	daySessions := domain.SessionsOnDay(view, day)
	total := domain.TotalWearing(daySessions, now)

	out := dto.DayStatusOutput{
		Day:          day,
		Sessions:     i.toOutputs(daySessions),
		TotalWearing: total,
		Status:       domain.StatusNone.String(),
		Unprotected:  domain.DayUnprotected(view, day),
	}

	prof, err := i.profile.Show(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoProfile) {
			return out, nil
		}
		return dto.DayStatusOutput{}, err
	}
	method, err := i.profile.ObjectiveFor(ctx, prof.MethodID)
	if err != nil {
		return dto.DayStatusOutput{}, err
	}
	inRange, err := i.profile.InRange(ctx, day)
	if err != nil {
		return dto.DayStatusOutput{}, err
	}

	objective := domain.Objective{MinExtra: method.MinExtra, Min: method.Min, Max: method.Max, MaxExtra: method.MaxExtra}
	out.MethodID = method.ID
	out.ObjectiveMin = method.Min
	out.ObjectiveMax = method.Max
	out.SingleTarget = method.SingleTarget
	out.InMethodRange = inRange
	if inRange || total > 0 {
		out.Status = domain.Classify(total, objective).String()
	}
	out.Remaining = domain.RemainingToObjective(objective.Min, day, view, now)
	slack, reach := domain.TimeUntilUnreachable(objective.Min, day, view, now)
	out.Slack = slack
	out.Reachability = reach.String()
	return out, nil
}

func (i *Interactor) Snapshot(ctx context.Context) ([]dto.SessionOutput, error) {
	all, err := i.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return i.toOutputs(all), nil
}

func (i *Interactor) toOutput(s domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		ID:             s.ID,
		Start:          s.Start,
		End:            s.End,
		Open:           s.Open(),
		UnprotectedSex: s.UnprotectedSex,
		Duration:       s.Duration(i.svc.Now()),
	}
}

func (i *Interactor) toOutputs(sessions []domain.Session) []dto.SessionOutput {
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, i.toOutput(s))
	}
	return out
}
