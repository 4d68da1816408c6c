package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/middleware"
	"github.com/streamlinehq/streamline/internal/repository"
	"github.com/streamlinehq/streamline/internal/server"
	"github.com/streamlinehq/streamline/internal/service"
	"github.com/streamlinehq/streamline/internal/validation"
)

// JobsHandler exposes field-service job CRUD and the status lifecycle.
type JobsHandler struct {
	Handler
	jobs *service.JobsService
}

func NewJobsHandler(s *server.Server, jobs *service.JobsService) *JobsHandler {
	return &JobsHandler{Handler: NewHandler(s), jobs: jobs}
}

type CreateJobRequest struct {
	ContactID      string     `json:"contact_id" validate:"required,uuid"`
	Title          string     `json:"title" validate:"required,max=200"`
	Description    string     `json:"description" validate:"max=5000"`
	AssignedUserID *string    `json:"assigned_user_id" validate:"omitempty,uuid"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
}

func (r *CreateJobRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.ScheduledStart != nil && r.ScheduledEnd != nil && !r.ScheduledEnd.After(*r.ScheduledStart) {
		return validation.CustomValidationErrors{
			{Field: "scheduled_end", Message: "must be after scheduled_start"},
		}
	}
	return nil
}

func (r *CreateJobRequest) toDomain() *domain.Job {
	return &domain.Job{
		ContactID:      r.ContactID,
		Title:          r.Title,
		Description:    r.Description,
		AssignedUserID: r.AssignedUserID,
		ScheduledStart: r.ScheduledStart,
		ScheduledEnd:   r.ScheduledEnd,
	}
}

// Create adds a job in the scheduled state.
func (h *JobsHandler) Create(c echo.Context, req *CreateJobRequest) (*domain.Job, error) {
	return h.jobs.Create(c.Request().Context(), middleware.GetUserID(c), req.toDomain())
}

type GetJobRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetJobRequest) Validate() error {
	return validation.Struct(r)
}

// Get fetches one job.
func (h *JobsHandler) Get(c echo.Context, req *GetJobRequest) (*domain.Job, error) {
	return h.jobs.Get(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

type ListJobsRequest struct {
	Status    string `query:"status" validate:"omitempty,oneof=scheduled dispatched in_progress completed canceled"`
	ContactID string `query:"contact_id" validate:"omitempty,uuid"`
	Limit     int    `query:"limit" validate:"min=0,max=200"`
	Offset    int    `query:"offset" validate:"min=0"`
}

func (r *ListJobsRequest) Validate() error {
	return validation.Struct(r)
}

// List returns jobs matching the filter. Technicians only see jobs
// assigned to them.
func (h *JobsHandler) List(c echo.Context, req *ListJobsRequest) ([]domain.Job, error) {
	return h.jobs.List(c.Request().Context(), middleware.GetUserID(c), repository.JobFilter{
		Status:    domain.JobStatus(req.Status),
		ContactID: req.ContactID,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
}

type UpdateJobRequest struct {
	ID string `param:"id" validate:"required,uuid"`
	CreateJobRequest
}

func (r *UpdateJobRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.ScheduledStart != nil && r.ScheduledEnd != nil && !r.ScheduledEnd.After(*r.ScheduledStart) {
		return validation.CustomValidationErrors{
			{Field: "scheduled_end", Message: "must be after scheduled_start"},
		}
	}
	return nil
}

// Update overwrites a job's mutable fields.
func (h *JobsHandler) Update(c echo.Context, req *UpdateJobRequest) (*domain.Job, error) {
	job := req.toDomain()
	job.ID = req.ID
	return h.jobs.Update(c.Request().Context(), middleware.GetUserID(c), job)
}

type UpdateJobStatusRequest struct {
	ID     string `param:"id" validate:"required,uuid"`
	Status string `json:"status" validate:"required,oneof=scheduled dispatched in_progress completed canceled"`
}

func (r *UpdateJobStatusRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateStatus moves a job through its lifecycle.
func (h *JobsHandler) UpdateStatus(c echo.Context, req *UpdateJobStatusRequest) (*domain.Job, error) {
	return h.jobs.UpdateStatus(c.Request().Context(), middleware.GetUserID(c), req.ID, domain.JobStatus(req.Status))
}

type DeleteJobRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteJobRequest) Validate() error {
	return validation.Struct(r)
}

// Delete removes a job that never left the scheduled state.
func (h *JobsHandler) Delete(c echo.Context, req *DeleteJobRequest) error {
	return h.jobs.Delete(c.Request().Context(), middleware.GetUserID(c), req.ID)
}
