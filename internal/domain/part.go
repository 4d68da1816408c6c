package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part is a catalog item: a physical part or a priced service unit.
type Part struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BundleItem is one part line inside a bundle.
type BundleItem struct {
	ID       string          `json:"id"`
	BundleID string          `json:"bundle_id"`
	PartID   string          `json:"part_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Bundle groups parts under a single price so quotes and invoices can
// reference one line instead of enumerating parts.
type Bundle struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	Items       []BundleItem    `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
