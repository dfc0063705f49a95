package in

import (
	"context"
	"time"

	"wearlog/internal/modules/profile/dto"
)

type Usecase interface {
	Init(ctx context.Context, input dto.InitInput) (dto.ProfileOutput, error)
	Show(ctx context.Context) (dto.ProfileOutput, error)
	SetMethod(ctx context.Context, methodID string) (dto.ProfileOutput, error)
	SetPrefs(ctx context.Context, input dto.SetPrefsInput) (dto.ProfileOutput, error)
	Methods(ctx context.Context) ([]dto.MethodOutput, error)
	ObjectiveFor(ctx context.Context, methodID string) (dto.MethodOutput, error)
	InRange(ctx context.Context, day time.Time) (bool, error)
}
