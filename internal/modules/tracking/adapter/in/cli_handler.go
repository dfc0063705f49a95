package in

import (
	"context"
	"time"

	"wearlog/internal/modules/tracking/dto"
	trackingin "wearlog/internal/modules/tracking/port/in"
)

type CLIHandler struct {
	usecase trackingin.Usecase
}

func NewCLIHandler(usecase trackingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, unprotected bool) (dto.SessionOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Unprotected: unprotected})
}

func (h CLIHandler) Stop(ctx context.Context) (dto.StopOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Active(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Active(ctx)
}

func (h CLIHandler) Rollover(ctx context.Context) (dto.RolloverOutput, error) {
	return h.usecase.Rollover(ctx)
}

func (h CLIHandler) Edit(ctx context.Context, id int64, start, end time.Time, unprotected bool) ([]dto.SessionOutput, error) {
	return h.usecase.Edit(ctx, dto.EditInput{ID: id, Start: start, End: end, Unprotected: unprotected})
}

func (h CLIHandler) Delete(ctx context.Context, id int64) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) MarkUnprotected(ctx context.Context, day time.Time, flag bool) (int, error) {
	return h.usecase.MarkUnprotected(ctx, day, flag)
}

func (h CLIHandler) ListDay(ctx context.Context, day time.Time) ([]dto.SessionOutput, error) {
	return h.usecase.ListDay(ctx, day)
}

func (h CLIHandler) DayStatus(ctx context.Context, day time.Time) (dto.DayStatusOutput, error) {
	return h.usecase.DayStatus(ctx, day)
}
