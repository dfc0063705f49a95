package in

import (
	"context"
	"time"

	"wearlog/internal/modules/tracking/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error)
	Stop(ctx context.Context) (dto.StopOutput, error)
	Active(ctx context.Context) (dto.SessionOutput, error)
	Rollover(ctx context.Context) (dto.RolloverOutput, error)
	Edit(ctx context.Context, input dto.EditInput) ([]dto.SessionOutput, error)
	Delete(ctx context.Context, id int64) error
	MarkUnprotected(ctx context.Context, day time.Time, flag bool) (int, error)
	ListDay(ctx context.Context, day time.Time) ([]dto.SessionOutput, error)
	DayStatus(ctx context.Context, day time.Time) (dto.DayStatusOutput, error)
	Snapshot(ctx context.Context) ([]dto.SessionOutput, error)
}
