package in

import (
	"context"
	"time"

	"wearlog/internal/modules/alert/dto"
	alertin "wearlog/internal/modules/alert/port/in"
)

type CLIHandler struct {
	usecase alertin.Usecase
}

func NewCLIHandler(usecase alertin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Poll(ctx context.Context) (dto.PollOutput, error) {
	return h.usecase.Poll(ctx)
}

func (h CLIHandler) Watch(ctx context.Context, interval time.Duration, sink func(dto.PollOutput)) error {
	return h.usecase.Watch(ctx, interval, sink)
}

func (h CLIHandler) Doctor(ctx context.Context) (dto.DoctorOutput, error) {
	return h.usecase.Doctor(ctx)
}
