package service

import (
	"context"
	"time"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/errs"
	"github.com/streamlinehq/streamline/internal/repository"
	"github.com/streamlinehq/streamline/internal/server"
)

// ScheduleService manages resources and conflict-checked bookings.
type ScheduleService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewScheduleService(s *server.Server, repos *repository.Repositories) *ScheduleService {
	return &ScheduleService{server: s, repos: repos}
}

func validateWindow(start, end time.Time) error {
	if !end.After(start) {
		return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "end_time", Error: "must be after start_time"},
		}, nil)
	}
	return nil
}

// CreateResource adds a schedulable resource. Technician resources
// must reference an existing user.
func (s *ScheduleService) CreateResource(ctx context.Context, actorClerkID string, res *domain.Resource) (*domain.Resource, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher); err != nil {
		return nil, err
	}
	if !domain.ValidResourceType(res.Type) {
		return nil, errs.NewBadRequestError("Unknown resource type.", true, nil, nil, nil)
	}
	if res.Type == domain.ResourceTypeTechnician {
		if res.UserID == nil {
			return nil, errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
				{Field: "user_id", Error: "required for technician resources"},
			}, nil)
		}
		if _, err := s.repos.Users.GetByID(ctx, *res.UserID); err != nil {
			return nil, err
		}
	}

	return s.repos.Schedule.CreateResource(ctx, res)
}

// ListResources returns resources, optionally filtered by type.
func (s *ScheduleService) ListResources(ctx context.Context, actorClerkID string, resourceType domain.ResourceType) ([]domain.Resource, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	if resourceType != "" && !domain.ValidResourceType(resourceType) {
		return nil, errs.NewBadRequestError("Unknown resource type.", true, nil, nil, nil)
	}
	return s.repos.Schedule.ListResources(ctx, resourceType)
}

// AssignResource books a resource onto a job. The overlap check and
// the insert are atomic within the repository, so a double booking of
// the same window cannot slip through under concurrency.
func (s *ScheduleService) AssignResource(ctx context.Context, actorClerkID string, a *domain.ResourceAssignment) (*domain.ResourceAssignment, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher); err != nil {
		return nil, err
	}
	if err := validateWindow(a.StartTime, a.EndTime); err != nil {
		return nil, err
	}

	resource, err := s.repos.Schedule.GetResource(ctx, a.ResourceID)
	if err != nil {
		return nil, err
	}
	if !resource.Active {
		return nil, errs.NewConflictError("Inactive resources cannot be booked.", true, nil)
	}
	if _, err := s.repos.Jobs.GetByID(ctx, a.JobID); err != nil {
		return nil, err
	}

	return s.repos.Schedule.CreateAssignment(ctx, a)
}

// CheckConflicts is the dry-run variant of AssignResource: it reports
// the overlapping assignments without booking anything.
func (s *ScheduleService) CheckConflicts(ctx context.Context, actorClerkID, resourceID string, start, end time.Time) ([]domain.ResourceAssignment, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	if _, err := s.repos.Schedule.GetResource(ctx, resourceID); err != nil {
		return nil, err
	}
	return s.repos.Schedule.ListConflicts(ctx, resourceID, start, end)
}

// ListAssignmentsForJob returns a job's bookings.
func (s *ScheduleService) ListAssignmentsForJob(ctx context.Context, actorClerkID, jobID string) ([]domain.ResourceAssignment, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	if _, err := s.repos.Jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.repos.Schedule.ListAssignmentsForJob(ctx, jobID)
}

// Unassign removes a booking.
func (s *ScheduleService) Unassign(ctx context.Context, actorClerkID, assignmentID string) error {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher); err != nil {
		return err
	}
	return s.repos.Schedule.DeleteAssignment(ctx, assignmentID)
}
