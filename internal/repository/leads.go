package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamlinehq/streamline/internal/domain"
)

// LeadsRepository persists sales pipeline entries.
type LeadsRepository struct {
	pool *pgxpool.Pool
}

const leadColumns = `id, contact_id, source, stage, estimated_value, message, score, score_band, last_contacted_at, created_at, updated_at`

func scanLead(row pgx.Row) (*domain.Lead, error) {
	var l domain.Lead
	err := row.Scan(
		&l.ID, &l.ContactID, &l.Source, &l.Stage, &l.EstimatedValue,
		&l.Message, &l.Score, &l.ScoreBand, &l.LastContactedAt,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a lead.
func (r *LeadsRepository) Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		insert into leads (contact_id, source, stage, estimated_value, message, score, score_band, last_contacted_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		returning `+leadColumns,
		l.ContactID, l.Source, l.Stage, l.EstimatedValue, l.Message, l.Score, l.ScoreBand, l.LastContactedAt,
	)
	return scanLead(row)
}

// GetByID fetches a lead by primary key.
func (r *LeadsRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `select `+leadColumns+` from leads where id = $1`, id)
	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("leads", err)
	}
	return lead, err
}

// List returns leads, optionally filtered by stage, hottest first
// then newest.
func (r *LeadsRepository) List(ctx context.Context, stage domain.LeadStage, limit, offset int) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		select `+leadColumns+` from leads
		where $1 = '' or stage = $1
		order by score desc, created_at desc, id
		limit $2 offset $3`,
		string(stage), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

// ListOpen returns leads still in play, meaning not won or lost. The
// rescore task works through this set.
func (r *LeadsRepository) ListOpen(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		select `+leadColumns+` from leads
		where stage not in ('won', 'lost')
		order by created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

// Update overwrites the mutable fields of a lead.
func (r *LeadsRepository) Update(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		update leads
		set source = $2, stage = $3, estimated_value = $4, message = $5,
			last_contacted_at = $6, updated_at = now()
		where id = $1
		returning `+leadColumns,
		l.ID, l.Source, l.Stage, l.EstimatedValue, l.Message, l.LastContactedAt,
	)
	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("leads", err)
	}
	return lead, err
}

// UpdateScore stores a freshly computed score and band.
func (r *LeadsRepository) UpdateScore(ctx context.Context, id string, score int, band domain.ScoreBand) (*domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		update leads set score = $2, score_band = $3, updated_at = now()
		where id = $1
		returning `+leadColumns,
		id, score, band,
	)
	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("leads", err)
	}
	return lead, err
}
