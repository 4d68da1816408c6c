package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamlinehq/streamline/internal/domain"
)

// InvoicesRepository persists invoices and their line items.
type InvoicesRepository struct {
	pool *pgxpool.Pool
}

const invoiceColumns = `id, job_id, contact_id, number, status, subtotal, tax_rate, tax_amount, total, due_at, sent_at, paid_at, created_at, updated_at`
const lineItemColumns = `id, invoice_id, description, quantity, unit_price, amount`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.ID, &inv.JobID, &inv.ContactID, &inv.Number, &inv.Status,
		&inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.Total,
		&inv.DueAt, &inv.SentAt, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func scanLineItem(row pgx.Row) (*domain.InvoiceLineItem, error) {
	var li domain.InvoiceLineItem
	err := row.Scan(&li.ID, &li.InvoiceID, &li.Description, &li.Quantity, &li.UnitPrice, &li.Amount)
	if err != nil {
		return nil, err
	}
	return &li, nil
}

// NextNumber allocates the next invoice number from the database
// sequence. Numbers are permanent once allocated; gaps from rolled
// back transactions are acceptable.
func (r *InvoicesRepository) NextNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `select nextval('invoice_number_seq')`).Scan(&n); err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%06d", n), nil
}

// Create inserts an invoice with its line items in one transaction.
// Totals must already be computed by the caller.
func (r *InvoicesRepository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	var created *domain.Invoice

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			insert into invoices (job_id, contact_id, number, status, subtotal, tax_rate, tax_amount, total, due_at)
			values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			returning `+invoiceColumns,
			inv.JobID, inv.ContactID, inv.Number, inv.Status,
			inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.Total, inv.DueAt,
		)
		var err error
		created, err = scanInvoice(row)
		if err != nil {
			return err
		}

		for i := range inv.LineItems {
			li := &inv.LineItems[i]
			itemRow := tx.QueryRow(ctx, `
				insert into invoice_line_items (invoice_id, description, quantity, unit_price, amount)
				values ($1, $2, $3, $4, $5)
				returning `+lineItemColumns,
				created.ID, li.Description, li.Quantity, li.UnitPrice, li.Amount,
			)
			item, err := scanLineItem(itemRow)
			if err != nil {
				return err
			}
			created.LineItems = append(created.LineItems, *item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID fetches an invoice with its line items.
func (r *InvoicesRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	row := r.pool.QueryRow(ctx, `select `+invoiceColumns+` from invoices where id = $1`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("invoices", err)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		select `+lineItemColumns+` from invoice_line_items
		where invoice_id = $1
		order by id`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		inv.LineItems = append(inv.LineItems, *li)
	}
	return inv, rows.Err()
}

// InvoiceFilter narrows List results. Zero values mean "no filter".
type InvoiceFilter struct {
	Status    domain.InvoiceStatus
	ContactID string
	JobID     string
	Limit     int
	Offset    int
}

// List returns invoices matching the filter, newest first, without
// line items.
func (r *InvoicesRepository) List(ctx context.Context, f InvoiceFilter) ([]domain.Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		select `+invoiceColumns+` from invoices
		where ($1 = '' or status = $1)
			and ($2 = '' or contact_id = $2::uuid)
			and ($3 = '' or job_id = $3::uuid)
		order by created_at desc, id
		limit $4 offset $5`,
		string(f.Status), f.ContactID, f.JobID, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

// ReplaceLineItems swaps an invoice's line items and totals in one
// transaction. Only draft invoices reach this; the service enforces
// that.
func (r *InvoicesRepository) ReplaceLineItems(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `delete from invoice_line_items where invoice_id = $1`, inv.ID); err != nil {
			return err
		}

		for i := range inv.LineItems {
			li := &inv.LineItems[i]
			if _, err := tx.Exec(ctx, `
				insert into invoice_line_items (invoice_id, description, quantity, unit_price, amount)
				values ($1, $2, $3, $4, $5)`,
				inv.ID, li.Description, li.Quantity, li.UnitPrice, li.Amount,
			); err != nil {
				return err
			}
		}

		tag, err := tx.Exec(ctx, `
			update invoices
			set subtotal = $2, tax_rate = $3, tax_amount = $4, total = $5, due_at = $6, updated_at = now()
			where id = $1`,
			inv.ID, inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.Total, inv.DueAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return notFound("invoices", pgx.ErrNoRows)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, inv.ID)
}

// UpdateStatus moves an invoice to a new status and stamps sent_at or
// paid_at when entering those states.
func (r *InvoicesRepository) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus, at time.Time) (*domain.Invoice, error) {
	row := r.pool.QueryRow(ctx, `
		update invoices
		set status = $2,
			sent_at = case when $2 = 'sent' then $3 else sent_at end,
			paid_at = case when $2 = 'paid' then $3 else paid_at end,
			updated_at = now()
		where id = $1
		returning `+invoiceColumns,
		id, status, at,
	)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("invoices", err)
	}
	return inv, err
}
