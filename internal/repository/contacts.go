package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamlinehq/streamline/internal/domain"
)

// ContactsRepository persists customer records.
type ContactsRepository struct {
	pool *pgxpool.Pool
}

const contactColumns = `id, first_name, last_name, email, phone, address, city, state, zip, notes, created_at, updated_at`

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.State, &c.Zip, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a contact.
func (r *ContactsRepository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	row := r.pool.QueryRow(ctx, `
		insert into contacts (first_name, last_name, email, phone, address, city, state, zip, notes)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		returning `+contactColumns,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.City, c.State, c.Zip, c.Notes,
	)
	return scanContact(row)
}

// GetByID fetches a contact by primary key.
func (r *ContactsRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	row := r.pool.QueryRow(ctx, `select `+contactColumns+` from contacts where id = $1`, id)
	contact, err := scanContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("contacts", err)
	}
	return contact, err
}

// GetByPhone finds the contact holding a normalized phone number.
// Conversations opened from an inbound number attach through this.
func (r *ContactsRepository) GetByPhone(ctx context.Context, phone string) (*domain.Contact, error) {
	row := r.pool.QueryRow(ctx, `
		select `+contactColumns+` from contacts
		where phone = $1
		order by created_at
		limit 1`,
		phone,
	)
	contact, err := scanContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("contacts", err)
	}
	return contact, err
}

// List returns contacts, optionally filtered by a case-insensitive
// name or phone search, newest first.
func (r *ContactsRepository) List(ctx context.Context, search string, limit, offset int) ([]domain.Contact, error) {
	rows, err := r.pool.Query(ctx, `
		select `+contactColumns+` from contacts
		where $1 = ''
			or first_name ilike '%' || $1 || '%'
			or last_name ilike '%' || $1 || '%'
			or phone like '%' || $1 || '%'
		order by created_at desc, id
		limit $2 offset $3`,
		search, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}
	return contacts, rows.Err()
}

// Update overwrites the mutable fields of a contact.
func (r *ContactsRepository) Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	row := r.pool.QueryRow(ctx, `
		update contacts
		set first_name = $2, last_name = $3, email = $4, phone = $5,
			address = $6, city = $7, state = $8, zip = $9, notes = $10,
			updated_at = now()
		where id = $1
		returning `+contactColumns,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.City, c.State, c.Zip, c.Notes,
	)
	contact, err := scanContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("contacts", err)
	}
	return contact, err
}

// Delete removes a contact. Referential integrity blocks deletion of
// contacts with jobs, invoices, conversations, or leads.
func (r *ContactsRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `delete from contacts where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("contacts", pgx.ErrNoRows)
	}
	return nil
}
