// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated data from handlers, enforces business rules such as role
// checks and status transitions, and calls repositories for
// persistence.
package service

import (
	"context"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/errs"
	"github.com/streamlinehq/streamline/internal/repository"
)

// List pagination bounds. Handlers can lower the limit; they cannot
// exceed the cap.
const (
	defaultListLimit = 50
	maxListLimit     = 200
)

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	}
	return limit
}

// resolveActor maps the authenticated Clerk identity to the local user
// row. Deactivated accounts keep a valid Clerk session until it
// expires, so the active flag has to be enforced here.
func resolveActor(ctx context.Context, repos *repository.Repositories, clerkID string) (*domain.User, error) {
	user, err := repos.Users.GetByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, errs.NewForbiddenError("Your account has been deactivated.", true)
	}
	return user, nil
}

// requireRole returns a forbidden error unless the actor holds one of
// the given roles.
func requireRole(actor *domain.User, roles ...domain.Role) error {
	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}
	return errs.NewForbiddenError("You do not have permission to perform this action.", true)
}
