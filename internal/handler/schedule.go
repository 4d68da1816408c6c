package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/middleware"
	"github.com/streamlinehq/streamline/internal/server"
	"github.com/streamlinehq/streamline/internal/service"
	"github.com/streamlinehq/streamline/internal/validation"
)

// ScheduleHandler exposes resources, conflict-checked bookings, and
// the dry-run conflict endpoint.
type ScheduleHandler struct {
	Handler
	schedule *service.ScheduleService
}

func NewScheduleHandler(s *server.Server, schedule *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Handler: NewHandler(s), schedule: schedule}
}

type CreateResourceRequest struct {
	Type   string  `json:"type" validate:"required,oneof=technician vehicle equipment"`
	Name   string  `json:"name" validate:"required,max=100"`
	UserID *string `json:"user_id" validate:"omitempty,uuid"`
}

func (r *CreateResourceRequest) Validate() error {
	return validation.Struct(r)
}

// CreateResource adds a schedulable resource.
func (h *ScheduleHandler) CreateResource(c echo.Context, req *CreateResourceRequest) (*domain.Resource, error) {
	return h.schedule.CreateResource(c.Request().Context(), middleware.GetUserID(c), &domain.Resource{
		Type:   domain.ResourceType(req.Type),
		Name:   req.Name,
		UserID: req.UserID,
	})
}

type ListResourcesRequest struct {
	Type string `query:"type" validate:"omitempty,oneof=technician vehicle equipment"`
}

func (r *ListResourcesRequest) Validate() error {
	return validation.Struct(r)
}

// ListResources returns resources, optionally filtered by type.
func (h *ScheduleHandler) ListResources(c echo.Context, req *ListResourcesRequest) ([]domain.Resource, error) {
	return h.schedule.ListResources(c.Request().Context(), middleware.GetUserID(c), domain.ResourceType(req.Type))
}

type AssignResourceRequest struct {
	ResourceID string    `json:"resource_id" validate:"required,uuid"`
	JobID      string    `json:"job_id" validate:"required,uuid"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

func (r *AssignResourceRequest) Validate() error {
	return validation.Struct(r)
}

// AssignResource books a resource onto a job. Returns 409 when the
// window overlaps an existing booking.
func (h *ScheduleHandler) AssignResource(c echo.Context, req *AssignResourceRequest) (*domain.ResourceAssignment, error) {
	return h.schedule.AssignResource(c.Request().Context(), middleware.GetUserID(c), &domain.ResourceAssignment{
		ResourceID: req.ResourceID,
		JobID:      req.JobID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
}

type CheckConflictsRequest struct {
	ResourceID string    `param:"id" validate:"required,uuid"`
	Start      time.Time `query:"start" validate:"required"`
	End        time.Time `query:"end" validate:"required,gtfield=Start"`
}

func (r *CheckConflictsRequest) Validate() error {
	return validation.Struct(r)
}

// ConflictsResponse reports the overlapping bookings for a window.
type ConflictsResponse struct {
	Conflicts []domain.ResourceAssignment `json:"conflicts"`
	HasAny    bool                        `json:"has_conflicts"`
}

// CheckConflicts reports overlaps without booking anything.
func (h *ScheduleHandler) CheckConflicts(c echo.Context, req *CheckConflictsRequest) (*ConflictsResponse, error) {
	conflicts, err := h.schedule.CheckConflicts(c.Request().Context(), middleware.GetUserID(c), req.ResourceID, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	return &ConflictsResponse{Conflicts: conflicts, HasAny: len(conflicts) > 0}, nil
}

type ListJobAssignmentsRequest struct {
	JobID string `param:"id" validate:"required,uuid"`
}

func (r *ListJobAssignmentsRequest) Validate() error {
	return validation.Struct(r)
}

// ListJobAssignments returns a job's bookings.
func (h *ScheduleHandler) ListJobAssignments(c echo.Context, req *ListJobAssignmentsRequest) ([]domain.ResourceAssignment, error) {
	return h.schedule.ListAssignmentsForJob(c.Request().Context(), middleware.GetUserID(c), req.JobID)
}

type DeleteAssignmentRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteAssignmentRequest) Validate() error {
	return validation.Struct(r)
}

// DeleteAssignment removes a booking.
func (h *ScheduleHandler) DeleteAssignment(c echo.Context, req *DeleteAssignmentRequest) error {
	return h.schedule.Unassign(c.Request().Context(), middleware.GetUserID(c), req.ID)
}
