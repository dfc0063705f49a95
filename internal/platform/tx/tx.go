package tx

import "context"

// Manager wraps a transactional boundary around multi-statement writes,
// such as the midnight close-then-reopen or a multi-day edit split.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
