package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamlinehq/streamline/internal/domain"
)

// JobsRepository persists field-service jobs.
type JobsRepository struct {
	pool *pgxpool.Pool
}

const jobColumns = `id, contact_id, title, description, status, assigned_user_id, scheduled_start, scheduled_end, created_at, updated_at`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.ContactID, &j.Title, &j.Description, &j.Status,
		&j.AssignedUserID, &j.ScheduledStart, &j.ScheduledEnd,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create inserts a job in the scheduled state.
func (r *JobsRepository) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	row := r.pool.QueryRow(ctx, `
		insert into jobs (contact_id, title, description, status, assigned_user_id, scheduled_start, scheduled_end)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning `+jobColumns,
		j.ContactID, j.Title, j.Description, j.Status, j.AssignedUserID, j.ScheduledStart, j.ScheduledEnd,
	)
	return scanJob(row)
}

// GetByID fetches a job by primary key.
func (r *JobsRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	row := r.pool.QueryRow(ctx, `select `+jobColumns+` from jobs where id = $1`, id)
	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("jobs", err)
	}
	return job, err
}

// JobFilter narrows List results. Zero values mean "no filter".
type JobFilter struct {
	Status         domain.JobStatus
	ContactID      string
	AssignedUserID string
	Limit          int
	Offset         int
}

// List returns jobs matching the filter, newest first.
func (r *JobsRepository) List(ctx context.Context, f JobFilter) ([]domain.Job, error) {
	rows, err := r.pool.Query(ctx, `
		select `+jobColumns+` from jobs
		where ($1 = '' or status = $1)
			and ($2 = '' or contact_id = $2::uuid)
			and ($3 = '' or assigned_user_id = $3::uuid)
		order by created_at desc, id
		limit $4 offset $5`,
		string(f.Status), f.ContactID, f.AssignedUserID, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// Update overwrites the mutable fields of a job. Status changes go
// through UpdateStatus so the transition table is enforced in one
// place.
func (r *JobsRepository) Update(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	row := r.pool.QueryRow(ctx, `
		update jobs
		set title = $2, description = $3, assigned_user_id = $4,
			scheduled_start = $5, scheduled_end = $6, updated_at = now()
		where id = $1
		returning `+jobColumns,
		j.ID, j.Title, j.Description, j.AssignedUserID, j.ScheduledStart, j.ScheduledEnd,
	)
	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("jobs", err)
	}
	return job, err
}

// UpdateStatus sets the job status. The service layer validates the
// transition before calling this.
func (r *JobsRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) (*domain.Job, error) {
	row := r.pool.QueryRow(ctx, `
		update jobs set status = $2, updated_at = now()
		where id = $1
		returning `+jobColumns,
		id, status,
	)
	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("jobs", err)
	}
	return job, err
}

// Delete removes a job and is only permitted by the service layer for
// jobs that never left the scheduled state.
func (r *JobsRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `delete from jobs where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("jobs", pgx.ErrNoRows)
	}
	return nil
}
