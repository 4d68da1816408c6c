package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
	InvoiceStatusVoid  InvoiceStatus = "void"
)

// invoiceTransitions is the legal invoice status transition table.
// Paid and void are terminal; a draft can be voided without sending.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft: {InvoiceStatusSent, InvoiceStatusVoid},
	InvoiceStatusSent:  {InvoiceStatusPaid, InvoiceStatusVoid},
}

// CanTransitionInvoice reports whether an invoice may move between the
// two statuses.
func CanTransitionInvoice(from, to InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// InvoiceLineItem is one billed line. Amount is Quantity * UnitPrice,
// computed server-side; client-supplied amounts are ignored.
type InvoiceLineItem struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice bills a contact for a job. All money fields use fixed-point
// decimals; totals are recomputed from line items on every write.
type Invoice struct {
	ID        string            `json:"id"`
	JobID     string            `json:"job_id"`
	ContactID string            `json:"contact_id"`
	Number    string            `json:"number"`
	Status    InvoiceStatus     `json:"status"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	TaxRate   decimal.Decimal   `json:"tax_rate"`
	TaxAmount decimal.Decimal   `json:"tax_amount"`
	Total     decimal.Decimal   `json:"total"`
	DueAt     *time.Time        `json:"due_at,omitempty"`
	SentAt    *time.Time        `json:"sent_at,omitempty"`
	PaidAt    *time.Time        `json:"paid_at,omitempty"`
	LineItems []InvoiceLineItem `json:"line_items,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ComputeTotals recomputes line amounts, subtotal, tax, and total from
// the line items. Tax is rounded to cents per line-total, not per line,
// matching how the invoices are presented.
func (inv *Invoice) ComputeTotals() {
	subtotal := decimal.Zero
	for i := range inv.LineItems {
		li := &inv.LineItems[i]
		li.Amount = li.Quantity.Mul(li.UnitPrice).Round(2)
		subtotal = subtotal.Add(li.Amount)
	}

	inv.Subtotal = subtotal
	inv.TaxAmount = subtotal.Mul(inv.TaxRate).Round(2)
	inv.Total = inv.Subtotal.Add(inv.TaxAmount)
}
