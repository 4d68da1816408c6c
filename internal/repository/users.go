package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamlinehq/streamline/internal/domain"
)

// UsersRepository persists account members.
type UsersRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `id, clerk_id, email, first_name, last_name, phone, role, active, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.ClerkID, &u.Email, &u.FirstName, &u.LastName,
		&u.Phone, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user. The caller is responsible for role validity;
// the database check constraint is the last line of defense.
func (r *UsersRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		insert into users (clerk_id, email, first_name, last_name, phone, role)
		values ($1, $2, $3, $4, $5, $6)
		returning `+userColumns,
		u.ClerkID, u.Email, u.FirstName, u.LastName, u.Phone, u.Role,
	)
	return scanUser(row)
}

// GetByID fetches a user by primary key.
func (r *UsersRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `select `+userColumns+` from users where id = $1`, id)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("users", err)
	}
	return user, err
}

// GetByClerkID resolves the external auth identity to the local user
// row. Every authenticated request goes through this lookup.
func (r *UsersRepository) GetByClerkID(ctx context.Context, clerkID string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `select `+userColumns+` from users where clerk_id = $1`, clerkID)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("users", err)
	}
	return user, err
}

// List returns all users ordered by creation time.
func (r *UsersRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `select `+userColumns+` from users order by created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// SetActive flips the active flag on one user.
func (r *UsersRepository) SetActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		update users set active = $2, updated_at = now()
		where id = $1
		returning `+userColumns,
		id, active,
	)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("users", err)
	}
	return user, err
}

// SetRole changes one user's role.
func (r *UsersRepository) SetRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		update users set role = $2, updated_at = now()
		where id = $1
		returning `+userColumns,
		id, role,
	)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("users", err)
	}
	return user, err
}

// ListActiveByRoles returns active users holding any of the given
// roles, ordered oldest first. The inbox router depends on this order
// for deterministic tie-breaking.
func (r *UsersRepository) ListActiveByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `
		select `+userColumns+` from users
		where active and role = any($1)
		order by created_at, id`,
		roles,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
