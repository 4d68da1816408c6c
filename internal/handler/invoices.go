package handler

import (
	"bytes"
	"encoding/csv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/middleware"
	"github.com/streamlinehq/streamline/internal/repository"
	"github.com/streamlinehq/streamline/internal/server"
	"github.com/streamlinehq/streamline/internal/service"
	"github.com/streamlinehq/streamline/internal/validation"
)

// InvoicesHandler exposes billing: drafts, sending, status moves, and
// a CSV export.
type InvoicesHandler struct {
	Handler
	invoices *service.InvoiceService
}

func NewInvoicesHandler(s *server.Server, invoices *service.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{Handler: NewHandler(s), invoices: invoices}
}

type LineItemRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type CreateInvoiceRequest struct {
	JobID     string            `json:"job_id" validate:"required,uuid"`
	TaxRate   decimal.Decimal   `json:"tax_rate"`
	DueAt     *time.Time        `json:"due_at"`
	LineItems []LineItemRequest `json:"line_items" validate:"required,min=1,max=100,dive"`
}

func (r *CreateInvoiceRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateInvoiceRequest) toInput() service.CreateInvoiceInput {
	items := make([]service.LineItemInput, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		items = append(items, service.LineItemInput{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		})
	}
	return service.CreateInvoiceInput{
		JobID:     r.JobID,
		TaxRate:   r.TaxRate,
		DueAt:     r.DueAt,
		LineItems: items,
	}
}

// Create opens a draft invoice for a job.
func (h *InvoicesHandler) Create(c echo.Context, req *CreateInvoiceRequest) (*domain.Invoice, error) {
	return h.invoices.Create(c.Request().Context(), middleware.GetUserID(c), req.toInput())
}

type GetInvoiceRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetInvoiceRequest) Validate() error {
	return validation.Struct(r)
}

// Get fetches an invoice with its line items.
func (h *InvoicesHandler) Get(c echo.Context, req *GetInvoiceRequest) (*domain.Invoice, error) {
	return h.invoices.Get(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

type ListInvoicesRequest struct {
	Status    string `query:"status" validate:"omitempty,oneof=draft sent paid void"`
	ContactID string `query:"contact_id" validate:"omitempty,uuid"`
	JobID     string `query:"job_id" validate:"omitempty,uuid"`
	Limit     int    `query:"limit" validate:"min=0,max=200"`
	Offset    int    `query:"offset" validate:"min=0"`
}

func (r *ListInvoicesRequest) Validate() error {
	return validation.Struct(r)
}

func (r *ListInvoicesRequest) toFilter() repository.InvoiceFilter {
	return repository.InvoiceFilter{
		Status:    domain.InvoiceStatus(r.Status),
		ContactID: r.ContactID,
		JobID:     r.JobID,
		Limit:     r.Limit,
		Offset:    r.Offset,
	}
}

// List returns invoices matching the filter.
func (h *InvoicesHandler) List(c echo.Context, req *ListInvoicesRequest) ([]domain.Invoice, error) {
	return h.invoices.List(c.Request().Context(), middleware.GetUserID(c), req.toFilter())
}

type UpdateInvoiceRequest struct {
	ID string `param:"id" validate:"required,uuid"`
	CreateInvoiceRequest
}

func (r *UpdateInvoiceRequest) Validate() error {
	return validation.Struct(r)
}

// Update replaces a draft invoice's line items.
func (h *InvoicesHandler) Update(c echo.Context, req *UpdateInvoiceRequest) (*domain.Invoice, error) {
	return h.invoices.UpdateDraft(c.Request().Context(), middleware.GetUserID(c), req.ID, req.toInput())
}

type SendInvoiceRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *SendInvoiceRequest) Validate() error {
	return validation.Struct(r)
}

// Send transitions a draft to sent and emails it to the contact.
func (h *InvoicesHandler) Send(c echo.Context, req *SendInvoiceRequest) (*domain.Invoice, error) {
	return h.invoices.Send(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

type UpdateInvoiceStatusRequest struct {
	ID     string `param:"id" validate:"required,uuid"`
	Status string `json:"status" validate:"required,oneof=paid void"`
}

func (r *UpdateInvoiceStatusRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateStatus moves an invoice to paid or void.
func (h *InvoicesHandler) UpdateStatus(c echo.Context, req *UpdateInvoiceStatusRequest) (*domain.Invoice, error) {
	return h.invoices.UpdateStatus(c.Request().Context(), middleware.GetUserID(c), req.ID, domain.InvoiceStatus(req.Status))
}

type ExportInvoicesRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=draft sent paid void"`
}

func (r *ExportInvoicesRequest) Validate() error {
	return validation.Struct(r)
}

// Export returns a CSV of invoices for bookkeeping handoff.
func (h *InvoicesHandler) Export(c echo.Context, req *ExportInvoicesRequest) ([]byte, error) {
	invoices, err := h.invoices.List(c.Request().Context(), middleware.GetUserID(c), repository.InvoiceFilter{
		Status: domain.InvoiceStatus(req.Status),
		Limit:  200,
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"number", "status", "subtotal", "tax", "total", "due_at", "created_at"})
	for _, inv := range invoices {
		dueAt := ""
		if inv.DueAt != nil {
			dueAt = inv.DueAt.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			inv.Number,
			string(inv.Status),
			inv.Subtotal.StringFixed(2),
			inv.TaxAmount.StringFixed(2),
			inv.Total.StringFixed(2),
			dueAt,
			inv.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
