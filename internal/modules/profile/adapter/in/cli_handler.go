package in

import (
	"context"
	"time"

	"wearlog/internal/modules/profile/dto"
	profilein "wearlog/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Init(ctx context.Context, methodID string, startedOn time.Time) (dto.ProfileOutput, error) {
	return h.usecase.Init(ctx, dto.InitInput{MethodID: methodID, StartedOn: startedOn})
}

func (h CLIHandler) Show(ctx context.Context) (dto.ProfileOutput, error) {
	return h.usecase.Show(ctx)
}

func (h CLIHandler) SetMethod(ctx context.Context, methodID string) (dto.ProfileOutput, error) {
	return h.usecase.SetMethod(ctx, methodID)
}

func (h CLIHandler) SetPrefs(ctx context.Context, input dto.SetPrefsInput) (dto.ProfileOutput, error) {
	return h.usecase.SetPrefs(ctx, input)
}

func (h CLIHandler) Methods(ctx context.Context) ([]dto.MethodOutput, error) {
	return h.usecase.Methods(ctx)
}
