package service

import (
	"context"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/errs"
	"github.com/streamlinehq/streamline/internal/lib/phone"
	"github.com/streamlinehq/streamline/internal/repository"
	"github.com/streamlinehq/streamline/internal/server"
)

// ContactService manages customer records.
type ContactService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewContactService(s *server.Server, repos *repository.Repositories) *ContactService {
	return &ContactService{server: s, repos: repos}
}

// normalizeContactPhone converts a raw phone into E.164 or returns a
// field-level validation error.
func normalizeContactPhone(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	normalized, err := phone.Normalize(raw)
	if err != nil {
		return "", errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "phone", Error: "must be a valid phone number"},
		}, nil)
	}
	return normalized, nil
}

// Create stores a new contact with its phone normalized to E.164.
func (s *ContactService) Create(ctx context.Context, actorClerkID string, c *domain.Contact) (*domain.Contact, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}

	normalized, err := normalizeContactPhone(c.Phone)
	if err != nil {
		return nil, err
	}
	c.Phone = normalized

	return s.repos.Contacts.Create(ctx, c)
}

// Get fetches one contact.
func (s *ContactService) Get(ctx context.Context, actorClerkID, id string) (*domain.Contact, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	return s.repos.Contacts.GetByID(ctx, id)
}

// List returns contacts matching an optional search term.
func (s *ContactService) List(ctx context.Context, actorClerkID, search string, limit, offset int) ([]domain.Contact, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	return s.repos.Contacts.List(ctx, search, clampLimit(limit), offset)
}

// Update overwrites a contact's fields.
func (s *ContactService) Update(ctx context.Context, actorClerkID string, c *domain.Contact) (*domain.Contact, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}

	normalized, err := normalizeContactPhone(c.Phone)
	if err != nil {
		return nil, err
	}
	c.Phone = normalized

	return s.repos.Contacts.Update(ctx, c)
}

// Delete removes a contact. Admin and dispatcher only; contacts with
// history are protected by foreign keys and surface as a conflict.
func (s *ContactService) Delete(ctx context.Context, actorClerkID, id string) error {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher); err != nil {
		return err
	}
	return s.repos.Contacts.Delete(ctx, id)
}
