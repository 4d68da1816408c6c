package service

import (
	"context"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/errs"
	"github.com/streamlinehq/streamline/internal/lib/job"
	"github.com/streamlinehq/streamline/internal/repository"
	"github.com/streamlinehq/streamline/internal/server"
)

// UserService manages account members and the bulk admin actions.
type UserService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewUserService(s *server.Server, repos *repository.Repositories) *UserService {
	return &UserService{server: s, repos: repos}
}

// CreateUserInput carries the fields for creating an account member.
type CreateUserInput struct {
	ClerkID   string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Role      domain.Role
}

// Create adds an account member (admin only) and enqueues a welcome
// email. A failed enqueue is logged but does not fail the request.
func (s *UserService) Create(ctx context.Context, actorClerkID string, in CreateUserInput) (*domain.User, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if !domain.ValidRole(in.Role) {
		return nil, errs.NewBadRequestError("Unknown role.", true, nil, nil, nil)
	}

	user, err := s.repos.Users.Create(ctx, &domain.User{
		ClerkID:   in.ClerkID,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Role:      in.Role,
	})
	if err != nil {
		return nil, err
	}

	task, err := job.NewWelcomeEmailTask(user.Email, user.FirstName)
	if err == nil {
		_, err = s.server.Job.Client.EnqueueContext(ctx, task)
	}
	if err != nil {
		s.server.Logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to enqueue welcome email")
	}

	return user, nil
}

// List returns all account members.
func (s *UserService) List(ctx context.Context, actorClerkID string) ([]domain.User, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	return s.repos.Users.List(ctx)
}

// Me returns the caller's own user record.
func (s *UserService) Me(ctx context.Context, actorClerkID string) (*domain.User, error) {
	return resolveActor(ctx, s.repos, actorClerkID)
}

// BulkActionInput is one bulk request: an action applied to a set of
// user IDs. Role is only read for the set_role action.
type BulkActionInput struct {
	Action  domain.BulkUserAction
	UserIDs []string
	Role    domain.Role
}

// BulkAction applies an admin action to many users at once. Each user
// succeeds or fails independently; the response reports per-user
// outcomes rather than aborting on the first failure. Admins cannot
// deactivate or demote themselves, which prevents locking the last
// admin out.
func (s *UserService) BulkAction(ctx context.Context, actorClerkID string, in BulkActionInput) ([]domain.BulkUserResult, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if in.Action == domain.BulkActionSetRole && !domain.ValidRole(in.Role) {
		return nil, errs.NewBadRequestError("Unknown role.", true, nil, nil, nil)
	}

	results := make([]domain.BulkUserResult, 0, len(in.UserIDs))
	for _, userID := range in.UserIDs {
		result := domain.BulkUserResult{UserID: userID, OK: true}

		if userID == actor.ID && in.Action != domain.BulkActionActivate {
			result.OK = false
			result.Error = "cannot modify your own account in a bulk action"
			results = append(results, result)
			continue
		}

		var err error
		switch in.Action {
		case domain.BulkActionActivate:
			_, err = s.repos.Users.SetActive(ctx, userID, true)
		case domain.BulkActionDeactivate:
			_, err = s.repos.Users.SetActive(ctx, userID, false)
		case domain.BulkActionSetRole:
			_, err = s.repos.Users.SetRole(ctx, userID, in.Role)
		default:
			return nil, errs.NewBadRequestError("Unknown bulk action.", true, nil, nil, nil)
		}

		if err != nil {
			result.OK = false
			result.Error = "update failed"
			s.server.Logger.Warn().Err(err).Str("user_id", userID).Str("action", string(in.Action)).Msg("bulk user action failed")
		}
		results = append(results, result)
	}

	return results, nil
}
