package out

import (
	"context"

	"wearlog/internal/modules/profile/domain"
)

type ProfileStore interface {
	Load(ctx context.Context) (domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
}

// MethodCatalog is read-only configuration: the set of known contraception
// methods and their objective quadruples.
type MethodCatalog interface {
	Methods(ctx context.Context) ([]domain.Method, error)
	Method(ctx context.Context, id string) (domain.Method, error)
}
