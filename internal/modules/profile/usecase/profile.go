package usecase

import (
	"context"
	"time"

	"wearlog/internal/modules/profile/domain"
	"wearlog/internal/modules/profile/dto"
	profilein "wearlog/internal/modules/profile/port/in"
	"wearlog/internal/modules/profile/service"
)

type Interactor struct {
	svc *service.ProfileService
}

func NewInteractor(svc *service.ProfileService) profilein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Init(ctx context.Context, input dto.InitInput) (dto.ProfileOutput, error) {
	profile := domain.Profile{
		MethodID:  input.MethodID,
		StartedOn: input.StartedOn,
		Prefs:     domain.DefaultPrefs(),
	}
	method, err := i.svc.Save(ctx, profile)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile, method), nil
}

func (i *Interactor) Show(ctx context.Context) (dto.ProfileOutput, error) {
	profile, err := i.svc.Load(ctx)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	method, err := i.svc.Method(ctx, profile.MethodID)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile, method), nil
}

func (i *Interactor) SetMethod(ctx context.Context, methodID string) (dto.ProfileOutput, error) {
	profile, err := i.svc.Load(ctx)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	profile.MethodID = methodID
	method, err := i.svc.Save(ctx, profile)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile, method), nil
}

func (i *Interactor) SetPrefs(ctx context.Context, input dto.SetPrefsInput) (dto.ProfileOutput, error) {
	profile, err := i.svc.Load(ctx)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&profile.Prefs.ImminentMiss, input.ImminentMiss)
	apply(&profile.Prefs.TwoHoursLeft, input.TwoHoursLeft)
	apply(&profile.Prefs.MinReached, input.MinReached)
	apply(&profile.Prefs.MaxReached, input.MaxReached)
	apply(&profile.Prefs.MaxExtraExceeded, input.MaxExtraExceeded)
	method, err := i.svc.Save(ctx, profile)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile, method), nil
}

func (i *Interactor) Methods(ctx context.Context) ([]dto.MethodOutput, error) {
	methods, err := i.svc.Methods(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MethodOutput, 0, len(methods))
	for _, m := range methods {
		out = append(out, toMethodOutput(m))
	}
	return out, nil
}

func (i *Interactor) ObjectiveFor(ctx context.Context, methodID string) (dto.MethodOutput, error) {
	method, err := i.svc.Method(ctx, methodID)
	if err != nil {
		return dto.MethodOutput{}, err
	}
	return toMethodOutput(method), nil
}

func (i *Interactor) InRange(ctx context.Context, day time.Time) (bool, error) {
	profile, err := i.svc.Load(ctx)
	if err != nil {
		return false, err
	}
	return profile.InContraceptionRange(day), nil
}

func toOutput(profile domain.Profile, method domain.Method) dto.ProfileOutput {
	return dto.ProfileOutput{
		MethodID:   profile.MethodID,
		MethodName: method.Name,
		StartedOn:  profile.StartedOn,
		Prefs: dto.PrefsOutput{
			ImminentMiss:     profile.Prefs.ImminentMiss,
			TwoHoursLeft:     profile.Prefs.TwoHoursLeft,
			MinReached:       profile.Prefs.MinReached,
			MaxReached:       profile.Prefs.MaxReached,
			MaxExtraExceeded: profile.Prefs.MaxExtraExceeded,
		},
	}
}

func toMethodOutput(m domain.Method) dto.MethodOutput {
	return dto.MethodOutput{
		ID:           m.ID,
		Name:         m.Name,
		MinExtra:     m.Objective.MinExtra,
		Min:          m.Objective.Min,
		Max:          m.Objective.Max,
		MaxExtra:     m.Objective.MaxExtra,
		SingleTarget: m.Objective.SingleTarget(),
	}
}
