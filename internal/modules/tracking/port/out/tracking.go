package out

import (
	"context"
	"time"

	"wearlog/internal/modules/tracking/domain"
)

// SessionStore persists wearing sessions. The engine only ever consumes a
// snapshot of the stored sessions and hands mutations back as commands.
type SessionStore interface {
	List(ctx context.Context) ([]domain.Session, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]domain.Session, error)
	FirstOpen(ctx context.Context) (domain.Session, error)
	Create(ctx context.Context, session domain.Session) (int64, error)
	Update(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id int64) error
}
