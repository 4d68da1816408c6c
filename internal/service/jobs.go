package service

import (
	"context"
	"fmt"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/errs"
	"github.com/streamlinehq/streamline/internal/repository"
	"github.com/streamlinehq/streamline/internal/server"
)

// JobsService manages field-service jobs and their status lifecycle.
type JobsService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewJobsService(s *server.Server, repos *repository.Repositories) *JobsService {
	return &JobsService{server: s, repos: repos}
}

func validateJobWindow(j *domain.Job) error {
	if j.ScheduledStart != nil && j.ScheduledEnd != nil && !j.ScheduledEnd.After(*j.ScheduledStart) {
		return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "scheduled_end", Error: "must be after scheduled_start"},
		}, nil)
	}
	return nil
}

// Create adds a job in the scheduled state after verifying the contact
// and optional assignee exist.
func (s *JobsService) Create(ctx context.Context, actorClerkID string, j *domain.Job) (*domain.Job, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	if err := validateJobWindow(j); err != nil {
		return nil, err
	}
	if _, err := s.repos.Contacts.GetByID(ctx, j.ContactID); err != nil {
		return nil, err
	}
	if j.AssignedUserID != nil {
		if _, err := s.repos.Users.GetByID(ctx, *j.AssignedUserID); err != nil {
			return nil, err
		}
	}

	j.Status = domain.JobStatusScheduled
	return s.repos.Jobs.Create(ctx, j)
}

// Get fetches one job.
func (s *JobsService) Get(ctx context.Context, actorClerkID, id string) (*domain.Job, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	return s.repos.Jobs.GetByID(ctx, id)
}

// List returns jobs matching the filter. Technicians only see their
// own assignments.
func (s *JobsService) List(ctx context.Context, actorClerkID string, f repository.JobFilter) ([]domain.Job, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleTechnician {
		f.AssignedUserID = actor.ID
	}
	f.Limit = clampLimit(f.Limit)
	return s.repos.Jobs.List(ctx, f)
}

// Update overwrites a job's mutable fields. Terminal jobs are frozen.
func (s *JobsService) Update(ctx context.Context, actorClerkID string, j *domain.Job) (*domain.Job, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	if err := validateJobWindow(j); err != nil {
		return nil, err
	}

	existing, err := s.repos.Jobs.GetByID(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	if existing.Status == domain.JobStatusCompleted || existing.Status == domain.JobStatusCanceled {
		return nil, errs.NewConflictError("Completed or canceled jobs cannot be edited.", true, nil)
	}
	if j.AssignedUserID != nil {
		if _, err := s.repos.Users.GetByID(ctx, *j.AssignedUserID); err != nil {
			return nil, err
		}
	}

	return s.repos.Jobs.Update(ctx, j)
}

// UpdateStatus moves a job through its lifecycle, rejecting illegal
// transitions.
func (s *JobsService) UpdateStatus(ctx context.Context, actorClerkID, id string, status domain.JobStatus) (*domain.Job, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	if !domain.ValidJobStatus(status) {
		return nil, errs.NewBadRequestError("Unknown job status.", true, nil, nil, nil)
	}

	existing, err := s.repos.Jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(existing.Status, status) {
		return nil, errs.NewConflictError(
			fmt.Sprintf("A job cannot move from %s to %s.", existing.Status, status), true, nil)
	}

	return s.repos.Jobs.UpdateStatus(ctx, id, status)
}

// Delete removes a job that never left the scheduled state. Anything
// further along must be canceled instead, preserving history.
func (s *JobsService) Delete(ctx context.Context, actorClerkID, id string) error {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher); err != nil {
		return err
	}

	existing, err := s.repos.Jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status != domain.JobStatusScheduled {
		return errs.NewConflictError("Only jobs still in the scheduled state can be deleted.", true, nil)
	}

	return s.repos.Jobs.Delete(ctx, id)
}
