package service

import (
	"context"
	"errors"
	"fmt"

	"pulsecheck/internal/model"
	"pulsecheck/internal/repository"
	"pulsecheck/internal/scoring"
)

var (
	ErrCatalogNotFound      = errors.New("catalog version not found")
	ErrVersionAlreadyExists = errors.New("catalog version already published")
)

// CatalogService provides read-through access to published question catalogs
// and lets admins publish new immutable versions. Every catalog is validated
// against the engine invariants before it is served or stored; a catalog that
// fails validation indicates a corrupt deployment, not a bad request.
type CatalogService struct {
	catalogRepo repository.CatalogRepo
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepo) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// GetVersion returns one published catalog version
func (s *CatalogService) GetVersion(ctx context.Context, version string) (*model.Catalog, error) {
	catalog, err := s.catalogRepo.GetByVersion(ctx, version)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, ErrCatalogNotFound
	}
	if err := scoring.ValidateCatalog(&catalog.Survey, catalog); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", version, err)
	}
	return catalog, nil
}

// GetLatest returns the most recently published catalog
func (s *CatalogService) GetLatest(ctx context.Context) (*model.Catalog, error) {
	catalog, err := s.catalogRepo.GetLatest(ctx)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, ErrCatalogNotFound
	}
	if err := scoring.ValidateCatalog(&catalog.Survey, catalog); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", catalog.Survey.Version, err)
	}
	return catalog, nil
}

// Publish stores a new catalog version after validating its invariants.
// Published versions are closed: re-publishing an existing version is
// rejected rather than overwritten.
func (s *CatalogService) Publish(ctx context.Context, catalog *model.Catalog) error {
	if err := scoring.ValidateCatalog(&catalog.Survey, catalog); err != nil {
		return err
	}

	existing, err := s.catalogRepo.GetByVersion(ctx, catalog.Survey.Version)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrVersionAlreadyExists
	}

	_, err = s.catalogRepo.Create(ctx, catalog)
	return err
}
