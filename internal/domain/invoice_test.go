package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionInvoice(t *testing.T) {
	tests := []struct {
		name string
		from InvoiceStatus
		to   InvoiceStatus
		want bool
	}{
		{name: "draft to sent", from: InvoiceStatusDraft, to: InvoiceStatusSent, want: true},
		{name: "draft to void", from: InvoiceStatusDraft, to: InvoiceStatusVoid, want: true},
		{name: "draft to paid skips send", from: InvoiceStatusDraft, to: InvoiceStatusPaid, want: false},
		{name: "sent to paid", from: InvoiceStatusSent, to: InvoiceStatusPaid, want: true},
		{name: "sent to void", from: InvoiceStatusSent, to: InvoiceStatusVoid, want: true},
		{name: "sent back to draft", from: InvoiceStatusSent, to: InvoiceStatusDraft, want: false},
		{name: "paid is terminal", from: InvoiceStatusPaid, to: InvoiceStatusVoid, want: false},
		{name: "void is terminal", from: InvoiceStatusVoid, to: InvoiceStatusDraft, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionInvoice(tt.from, tt.to))
		})
	}
}

func TestInvoiceComputeTotals(t *testing.T) {
	inv := &Invoice{
		TaxRate: decimal.RequireFromString("0.0825"),
		LineItems: []InvoiceLineItem{
			{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("49.99")},
			{Quantity: decimal.RequireFromString("1.5"), UnitPrice: decimal.NewFromInt(120)},
		},
	}

	inv.ComputeTotals()

	assert.True(t, inv.LineItems[0].Amount.Equal(decimal.RequireFromString("99.98")), inv.LineItems[0].Amount.String())
	assert.True(t, inv.LineItems[1].Amount.Equal(decimal.RequireFromString("180")), inv.LineItems[1].Amount.String())
	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("279.98")), inv.Subtotal.String())
	// 279.98 * 0.0825 = 23.09835, rounds to 23.10
	assert.True(t, inv.TaxAmount.Equal(decimal.RequireFromString("23.10")), inv.TaxAmount.String())
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("303.08")), inv.Total.String())
}

func TestInvoiceComputeTotals_RoundsLineAmounts(t *testing.T) {
	inv := &Invoice{
		TaxRate: decimal.Zero,
		LineItems: []InvoiceLineItem{
			{Quantity: decimal.RequireFromString("3"), UnitPrice: decimal.RequireFromString("0.333")},
		},
	}

	inv.ComputeTotals()

	// 0.999 rounds half-up to 1.00 at the line level.
	assert.True(t, inv.LineItems[0].Amount.Equal(decimal.NewFromInt(1)), inv.LineItems[0].Amount.String())
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(1)), inv.Total.String())
}

func TestInvoiceComputeTotals_Empty(t *testing.T) {
	inv := &Invoice{TaxRate: decimal.RequireFromString("0.1")}

	inv.ComputeTotals()

	assert.True(t, inv.Subtotal.IsZero())
	assert.True(t, inv.TaxAmount.IsZero())
	assert.True(t, inv.Total.IsZero())
}
