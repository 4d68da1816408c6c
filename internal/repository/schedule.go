package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/errs"
	"github.com/streamlinehq/streamline/internal/sqlerr"
)

// ScheduleRepository persists resources and their job assignments.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

const resourceColumns = `id, type, name, user_id, active, created_at, updated_at`
const assignmentColumns = `id, resource_id, job_id, start_time, end_time, created_at`

func scanResource(row pgx.Row) (*domain.Resource, error) {
	var res domain.Resource
	err := row.Scan(&res.ID, &res.Type, &res.Name, &res.UserID, &res.Active, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func scanAssignment(row pgx.Row) (*domain.ResourceAssignment, error) {
	var a domain.ResourceAssignment
	err := row.Scan(&a.ID, &a.ResourceID, &a.JobID, &a.StartTime, &a.EndTime, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateResource inserts a schedulable resource.
func (r *ScheduleRepository) CreateResource(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	row := r.pool.QueryRow(ctx, `
		insert into resources (type, name, user_id)
		values ($1, $2, $3)
		returning `+resourceColumns,
		res.Type, res.Name, res.UserID,
	)
	return scanResource(row)
}

// GetResource fetches one resource by primary key.
func (r *ScheduleRepository) GetResource(ctx context.Context, id string) (*domain.Resource, error) {
	row := r.pool.QueryRow(ctx, `select `+resourceColumns+` from resources where id = $1`, id)
	res, err := scanResource(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("resources", err)
	}
	return res, err
}

// ListResources returns resources, optionally filtered by type.
func (r *ScheduleRepository) ListResources(ctx context.Context, resourceType domain.ResourceType) ([]domain.Resource, error) {
	rows, err := r.pool.Query(ctx, `
		select `+resourceColumns+` from resources
		where $1 = '' or type = $1
		order by name, id`,
		string(resourceType),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *res)
	}
	return resources, rows.Err()
}

// CreateAssignment books a resource onto a job, rejecting the booking
// when the window overlaps an existing assignment for the same
// resource. The in-transaction check catches committed overlaps; the
// exclusion constraint on resource_assignments catches the race where
// two bookings for the same window commit concurrently, since neither
// transaction can see the other's uncommitted row.
func (r *ScheduleRepository) CreateAssignment(ctx context.Context, a *domain.ResourceAssignment) (*domain.ResourceAssignment, error) {
	var created *domain.ResourceAssignment

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var conflictID string
		err := tx.QueryRow(ctx, `
			select id from resource_assignments
			where resource_id = $1 and start_time < $3 and end_time > $2
			limit 1
			for update`,
			a.ResourceID, a.StartTime, a.EndTime,
		).Scan(&conflictID)

		switch {
		case err == nil:
			return errs.NewConflictError("Resource is already booked for this time window.", true, nil)
		case !errors.Is(err, pgx.ErrNoRows):
			return err
		}

		row := tx.QueryRow(ctx, `
			insert into resource_assignments (resource_id, job_id, start_time, end_time)
			values ($1, $2, $3, $4)
			returning `+assignmentColumns,
			a.ResourceID, a.JobID, a.StartTime, a.EndTime,
		)
		created, err = scanAssignment(row)
		if isOverlapViolation(err) {
			return errs.NewConflictError("Resource is already booked for this time window.", true, nil)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// isOverlapViolation reports whether err is the
// resource_assignments_no_overlap exclusion constraint firing.
func isOverlapViolation(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) &&
		sqlerr.MapCode(pgerr.Code) == sqlerr.ExclusionViolation &&
		pgerr.ConstraintName == "resource_assignments_no_overlap"
}

// ListConflicts returns the assignments of a resource that overlap
// [start, end). Used by the dry-run conflict check endpoint.
func (r *ScheduleRepository) ListConflicts(ctx context.Context, resourceID string, start, end time.Time) ([]domain.ResourceAssignment, error) {
	rows, err := r.pool.Query(ctx, `
		select `+assignmentColumns+` from resource_assignments
		where resource_id = $1 and start_time < $3 and end_time > $2
		order by start_time, id`,
		resourceID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.ResourceAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

// ListAssignmentsForJob returns a job's bookings ordered by start.
func (r *ScheduleRepository) ListAssignmentsForJob(ctx context.Context, jobID string) ([]domain.ResourceAssignment, error) {
	rows, err := r.pool.Query(ctx, `
		select `+assignmentColumns+` from resource_assignments
		where job_id = $1
		order by start_time, id`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.ResourceAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

// DeleteAssignment removes a booking.
func (r *ScheduleRepository) DeleteAssignment(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `delete from resource_assignments where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("resource_assignments", pgx.ErrNoRows)
	}
	return nil
}
