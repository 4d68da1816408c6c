package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/errs"
	"github.com/streamlinehq/streamline/internal/lib/job"
	"github.com/streamlinehq/streamline/internal/repository"
	"github.com/streamlinehq/streamline/internal/server"
)

// InvoiceService manages billing: invoice drafts, totals, the status
// lifecycle, and sending invoices to contacts by email.
type InvoiceService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewInvoiceService(s *server.Server, repos *repository.Repositories) *InvoiceService {
	return &InvoiceService{server: s, repos: repos}
}

// LineItemInput is one client-supplied invoice line. Amounts are
// always recomputed server-side.
type LineItemInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// CreateInvoiceInput carries the fields for opening an invoice draft.
type CreateInvoiceInput struct {
	JobID     string
	TaxRate   decimal.Decimal
	DueAt     *time.Time
	LineItems []LineItemInput
}

func validateTaxRate(rate decimal.Decimal) error {
	if rate.Sign() < 0 || rate.GreaterThan(decimal.NewFromInt(1)) {
		return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "tax_rate", Error: "must be between 0 and 1"},
		}, nil)
	}
	return nil
}

func buildLineItems(items []LineItemInput) ([]domain.InvoiceLineItem, error) {
	if len(items) == 0 {
		return nil, errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "line_items", Error: "at least one line item is required"},
		}, nil)
	}

	out := make([]domain.InvoiceLineItem, 0, len(items))
	for _, in := range items {
		if in.Quantity.Sign() <= 0 || in.UnitPrice.Sign() < 0 {
			return nil, errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
				{Field: "line_items", Error: "quantity must be positive and unit_price non-negative"},
			}, nil)
		}
		out = append(out, domain.InvoiceLineItem{
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
		})
	}
	return out, nil
}

// Create opens a draft invoice for a job. The contact is taken from
// the job, the number from the database sequence, and totals are
// computed from the line items.
func (s *InvoiceService) Create(ctx context.Context, actorClerkID string, in CreateInvoiceInput) (*domain.Invoice, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher, domain.RoleSales); err != nil {
		return nil, err
	}
	if err := validateTaxRate(in.TaxRate); err != nil {
		return nil, err
	}

	jobRecord, err := s.repos.Jobs.GetByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}

	lineItems, err := buildLineItems(in.LineItems)
	if err != nil {
		return nil, err
	}

	number, err := s.repos.Invoices.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		JobID:     jobRecord.ID,
		ContactID: jobRecord.ContactID,
		Number:    number,
		Status:    domain.InvoiceStatusDraft,
		TaxRate:   in.TaxRate,
		DueAt:     in.DueAt,
		LineItems: lineItems,
	}
	invoice.ComputeTotals()

	return s.repos.Invoices.Create(ctx, invoice)
}

// Get fetches an invoice with its line items.
func (s *InvoiceService) Get(ctx context.Context, actorClerkID, id string) (*domain.Invoice, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	return s.repos.Invoices.GetByID(ctx, id)
}

// List returns invoices matching the filter.
func (s *InvoiceService) List(ctx context.Context, actorClerkID string, f repository.InvoiceFilter) ([]domain.Invoice, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	f.Limit = clampLimit(f.Limit)
	return s.repos.Invoices.List(ctx, f)
}

// UpdateDraft replaces a draft invoice's line items, tax rate, and due
// date, recomputing totals. Sent invoices are immutable.
func (s *InvoiceService) UpdateDraft(ctx context.Context, actorClerkID, id string, in CreateInvoiceInput) (*domain.Invoice, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher, domain.RoleSales); err != nil {
		return nil, err
	}

	existing, err := s.repos.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != domain.InvoiceStatusDraft {
		return nil, errs.NewConflictError("Only draft invoices can be edited.", true, nil)
	}

	if err := validateTaxRate(in.TaxRate); err != nil {
		return nil, err
	}

	lineItems, err := buildLineItems(in.LineItems)
	if err != nil {
		return nil, err
	}

	existing.TaxRate = in.TaxRate
	existing.DueAt = in.DueAt
	existing.LineItems = lineItems
	existing.ComputeTotals()

	return s.repos.Invoices.ReplaceLineItems(ctx, existing)
}

// Send transitions a draft to sent and enqueues the invoice email to
// the contact. The email rides the critical queue; a failed enqueue
// fails the request so the caller knows the contact was not notified.
func (s *InvoiceService) Send(ctx context.Context, actorClerkID, id string) (*domain.Invoice, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher, domain.RoleSales); err != nil {
		return nil, err
	}

	existing, err := s.repos.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionInvoice(existing.Status, domain.InvoiceStatusSent) {
		return nil, errs.NewConflictError(
			fmt.Sprintf("An invoice cannot move from %s to sent.", existing.Status), true, nil)
	}

	contact, err := s.repos.Contacts.GetByID(ctx, existing.ContactID)
	if err != nil {
		return nil, err
	}
	if contact.Email == "" {
		return nil, errs.NewConflictError("The contact has no email address on file.", true, nil)
	}

	invoice, err := s.repos.Invoices.UpdateStatus(ctx, id, domain.InvoiceStatusSent, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	dueAt := ""
	if invoice.DueAt != nil {
		dueAt = invoice.DueAt.Format("January 2, 2006")
	}
	task, err := job.NewInvoiceEmailTask(job.InvoiceEmailPayload{
		To:            contact.Email,
		ContactName:   contact.FirstName,
		InvoiceNumber: invoice.Number,
		Total:         invoice.Total.StringFixed(2),
		DueAt:         dueAt,
	})
	if err == nil {
		_, err = s.server.Job.Client.EnqueueContext(ctx, task)
	}
	if err != nil {
		s.server.Logger.Error().Err(err).Str("invoice_id", invoice.ID).Msg("failed to enqueue invoice email")
		return nil, err
	}

	return invoice, nil
}

// UpdateStatus moves an invoice to paid or void, enforcing the
// transition table.
func (s *InvoiceService) UpdateStatus(ctx context.Context, actorClerkID, id string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(actor, domain.RoleAdmin, domain.RoleDispatcher, domain.RoleSales); err != nil {
		return nil, err
	}

	switch status {
	case domain.InvoiceStatusPaid, domain.InvoiceStatusVoid:
	case domain.InvoiceStatusSent:
		return nil, errs.NewBadRequestError("Use the send endpoint to send an invoice.", true, nil, nil, nil)
	default:
		return nil, errs.NewBadRequestError("Unknown invoice status.", true, nil, nil, nil)
	}

	existing, err := s.repos.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionInvoice(existing.Status, status) {
		return nil, errs.NewConflictError(
			fmt.Sprintf("An invoice cannot move from %s to %s.", existing.Status, status), true, nil)
	}

	return s.repos.Invoices.UpdateStatus(ctx, id, status, time.Now().UTC())
}
