package in

import (
	"context"
	"time"

	"wearlog/internal/modules/alert/dto"
)

type Usecase interface {
	Poll(ctx context.Context) (dto.PollOutput, error)
	Watch(ctx context.Context, interval time.Duration, sink func(dto.PollOutput)) error
	Doctor(ctx context.Context) (dto.DoctorOutput, error)
}
