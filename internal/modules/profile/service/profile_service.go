package service

import (
	"context"
	"fmt"

	"wearlog/internal/modules/profile/domain"
	profileout "wearlog/internal/modules/profile/port/out"
)

type ProfileService struct {
	store   profileout.ProfileStore
	catalog profileout.MethodCatalog
}

func NewProfileService(store profileout.ProfileStore, catalog profileout.MethodCatalog) *ProfileService {
	return &ProfileService{store: store, catalog: catalog}
}

func (s *ProfileService) Load(ctx context.Context) (domain.Profile, error) {
	return s.store.Load(ctx)
}

// Save resolves the method against the catalog before writing so an
// unknown or misconfigured method never reaches the store.
func (s *ProfileService) Save(ctx context.Context, profile domain.Profile) (domain.Method, error) {
	if err := profile.Validate(); err != nil {
		return domain.Method{}, err
	}
	method, err := s.catalog.Method(ctx, profile.MethodID)
	if err != nil {
		return domain.Method{}, err
	}
	if err := s.store.Save(ctx, profile); err != nil {
		return domain.Method{}, fmt.Errorf("save profile: %w", err)
	}
	return method, nil
}

func (s *ProfileService) Methods(ctx context.Context) ([]domain.Method, error) {
	return s.catalog.Methods(ctx)
}

func (s *ProfileService) Method(ctx context.Context, id string) (domain.Method, error) {
	return s.catalog.Method(ctx, id)
}
