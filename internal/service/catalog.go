package service

import (
	"context"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/errs"
	"github.com/streamlinehq/streamline/internal/repository"
	"github.com/streamlinehq/streamline/internal/server"
)

// CatalogService manages the parts catalog and part bundles.
type CatalogService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewCatalogService(s *server.Server, repos *repository.Repositories) *CatalogService {
	return &CatalogService{server: s, repos: repos}
}

// CreatePart adds a catalog part.
func (s *CatalogService) CreatePart(ctx context.Context, actorClerkID string, p *domain.Part) (*domain.Part, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher); err != nil {
		return nil, err
	}
	if p.UnitCost.Sign() < 0 || p.UnitPrice.Sign() < 0 {
		return nil, errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "unit_price", Error: "costs and prices must be non-negative"},
		}, nil)
	}
	return s.repos.Catalog.CreatePart(ctx, p)
}

// GetPart fetches one part.
func (s *CatalogService) GetPart(ctx context.Context, actorClerkID, id string) (*domain.Part, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	return s.repos.Catalog.GetPart(ctx, id)
}

// ListParts returns the catalog. Inactive parts are only visible to
// admins.
func (s *CatalogService) ListParts(ctx context.Context, actorClerkID string, includeInactive bool) ([]domain.Part, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if includeInactive && actor.Role != domain.RoleAdmin {
		includeInactive = false
	}
	return s.repos.Catalog.ListParts(ctx, includeInactive)
}

func (s *CatalogService) validateBundleItems(ctx context.Context, items []domain.BundleItem) error {
	if len(items) == 0 {
		return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "items", Error: "a bundle needs at least one part"},
		}, nil)
	}
	for _, item := range items {
		if item.Quantity.Sign() <= 0 {
			return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
				{Field: "items", Error: "quantities must be positive"},
			}, nil)
		}
		if _, err := s.repos.Catalog.GetPart(ctx, item.PartID); err != nil {
			return err
		}
	}
	return nil
}

// CreateBundle groups parts under one price.
func (s *CatalogService) CreateBundle(ctx context.Context, actorClerkID string, b *domain.Bundle) (*domain.Bundle, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher); err != nil {
		return nil, err
	}
	if b.Price.Sign() < 0 {
		return nil, errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "price", Error: "must be non-negative"},
		}, nil)
	}
	if err := s.validateBundleItems(ctx, b.Items); err != nil {
		return nil, err
	}
	return s.repos.Catalog.CreateBundle(ctx, b)
}

// GetBundle fetches a bundle with its items.
func (s *CatalogService) GetBundle(ctx context.Context, actorClerkID, id string) (*domain.Bundle, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	return s.repos.Catalog.GetBundle(ctx, id)
}

// ListBundles returns bundles. Inactive bundles are only visible to
// admins.
func (s *CatalogService) ListBundles(ctx context.Context, actorClerkID string, includeInactive bool) ([]domain.Bundle, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if includeInactive && actor.Role != domain.RoleAdmin {
		includeInactive = false
	}
	return s.repos.Catalog.ListBundles(ctx, includeInactive)
}

// UpdateBundle overwrites a bundle and replaces its items.
func (s *CatalogService) UpdateBundle(ctx context.Context, actorClerkID string, b *domain.Bundle) (*domain.Bundle, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher); err != nil {
		return nil, err
	}
	if b.Price.Sign() < 0 {
		return nil, errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "price", Error: "must be non-negative"},
		}, nil)
	}
	if err := s.validateBundleItems(ctx, b.Items); err != nil {
		return nil, err
	}
	return s.repos.Catalog.UpdateBundle(ctx, b)
}

// DeleteBundle removes a bundle.
func (s *CatalogService) DeleteBundle(ctx context.Context, actorClerkID, id string) error {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher); err != nil {
		return err
	}
	return s.repos.Catalog.DeleteBundle(ctx, id)
}
