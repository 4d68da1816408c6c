package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/middleware"
	"github.com/streamlinehq/streamline/internal/server"
	"github.com/streamlinehq/streamline/internal/service"
	"github.com/streamlinehq/streamline/internal/validation"
)

// LeadsHandler exposes the sales pipeline and the lead scorer.
type LeadsHandler struct {
	Handler
	leads *service.LeadService
}

func NewLeadsHandler(s *server.Server, leads *service.LeadService) *LeadsHandler {
	return &LeadsHandler{Handler: NewHandler(s), leads: leads}
}

type CreateLeadRequest struct {
	ContactID       string          `json:"contact_id" validate:"required,uuid"`
	Source          string          `json:"source" validate:"max=50"`
	Stage           string          `json:"stage" validate:"omitempty,oneof=new contacted qualified proposal won lost"`
	EstimatedValue  decimal.Decimal `json:"estimated_value"`
	Message         string          `json:"message" validate:"max=5000"`
	LastContactedAt *time.Time      `json:"last_contacted_at"`
}

func (r *CreateLeadRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateLeadRequest) toDomain() *domain.Lead {
	return &domain.Lead{
		ContactID:       r.ContactID,
		Source:          r.Source,
		Stage:           domain.LeadStage(r.Stage),
		EstimatedValue:  r.EstimatedValue,
		Message:         r.Message,
		LastContactedAt: r.LastContactedAt,
	}
}

// Create stores a lead and scores it immediately.
func (h *LeadsHandler) Create(c echo.Context, req *CreateLeadRequest) (*domain.Lead, error) {
	return h.leads.Create(c.Request().Context(), middleware.GetUserID(c), req.toDomain())
}

type GetLeadRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetLeadRequest) Validate() error {
	return validation.Struct(r)
}

// Get fetches one lead.
func (h *LeadsHandler) Get(c echo.Context, req *GetLeadRequest) (*domain.Lead, error) {
	return h.leads.Get(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

type ListLeadsRequest struct {
	Stage  string `query:"stage" validate:"omitempty,oneof=new contacted qualified proposal won lost"`
	Limit  int    `query:"limit" validate:"min=0,max=200"`
	Offset int    `query:"offset" validate:"min=0"`
}

func (r *ListLeadsRequest) Validate() error {
	return validation.Struct(r)
}

// List returns leads, hottest first.
func (h *LeadsHandler) List(c echo.Context, req *ListLeadsRequest) ([]domain.Lead, error) {
	return h.leads.List(c.Request().Context(), middleware.GetUserID(c), domain.LeadStage(req.Stage), req.Limit, req.Offset)
}

type UpdateLeadRequest struct {
	ID string `param:"id" validate:"required,uuid"`
	CreateLeadRequest
}

func (r *UpdateLeadRequest) Validate() error {
	return validation.Struct(r)
}

// Update overwrites a lead's fields and rescores it.
func (h *LeadsHandler) Update(c echo.Context, req *UpdateLeadRequest) (*domain.Lead, error) {
	lead := req.toDomain()
	lead.ID = req.ID
	if lead.Stage == "" {
		lead.Stage = domain.LeadStageNew
	}
	return h.leads.Update(c.Request().Context(), middleware.GetUserID(c), lead)
}

type ScoreLeadsRequest struct {
	// Background defers the rescore to the job queue instead of
	// running it inline.
	Background bool `json:"background"`
}

func (r *ScoreLeadsRequest) Validate() error { return nil }

// ScoreLeadsResponse reports a rescore run.
type ScoreLeadsResponse struct {
	Leads    []domain.Lead `json:"leads,omitempty"`
	Enqueued bool          `json:"enqueued,omitempty"`
}

// Score rescores every open lead, inline or via the job queue.
func (h *LeadsHandler) Score(c echo.Context, req *ScoreLeadsRequest) (*ScoreLeadsResponse, error) {
	ctx := c.Request().Context()
	actor := middleware.GetUserID(c)

	if req.Background {
		if err := h.leads.EnqueueRescore(ctx, actor); err != nil {
			return nil, err
		}
		return &ScoreLeadsResponse{Enqueued: true}, nil
	}

	leads, err := h.leads.ScoreAll(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &ScoreLeadsResponse{Leads: leads}, nil
}

type GetLeadScoreRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetLeadScoreRequest) Validate() error {
	return validation.Struct(r)
}

// LeadScoreResponse is a cached score lookup.
type LeadScoreResponse struct {
	LeadID string `json:"lead_id"`
	Score  int    `json:"score"`
}

// GetScore returns a lead's score from the cache, falling back to the
// database.
func (h *LeadsHandler) GetScore(c echo.Context, req *GetLeadScoreRequest) (*LeadScoreResponse, error) {
	score, err := h.leads.CachedScore(c.Request().Context(), middleware.GetUserID(c), req.ID)
	if err != nil {
		return nil, err
	}
	return &LeadScoreResponse{LeadID: req.ID, Score: score}, nil
}
