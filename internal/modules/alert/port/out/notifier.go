package out

import (
	"context"

	"wearlog/internal/modules/alert/domain"
)

// Description identifies the delivery channel behind the Notifier port.
type Description struct {
	Name    string
	Version string
}

type Notifier interface {
	Notify(ctx context.Context, intent domain.Intent) error
	Describe(ctx context.Context) (Description, error)
}
