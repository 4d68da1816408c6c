package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamlinehq/streamline/internal/domain"
)

// CatalogRepository persists the parts catalog and part bundles.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

const partColumns = `id, sku, name, description, unit_cost, unit_price, active, created_at, updated_at`
const bundleColumns = `id, name, description, price, active, created_at, updated_at`
const bundleItemColumns = `id, bundle_id, part_id, quantity`

func scanPart(row pgx.Row) (*domain.Part, error) {
	var p domain.Part
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitCost, &p.UnitPrice, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanBundle(row pgx.Row) (*domain.Bundle, error) {
	var b domain.Bundle
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Price, &b.Active, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBundleItem(row pgx.Row) (*domain.BundleItem, error) {
	var bi domain.BundleItem
	err := row.Scan(&bi.ID, &bi.BundleID, &bi.PartID, &bi.Quantity)
	if err != nil {
		return nil, err
	}
	return &bi, nil
}

// CreatePart inserts a catalog part.
func (r *CatalogRepository) CreatePart(ctx context.Context, p *domain.Part) (*domain.Part, error) {
	row := r.pool.QueryRow(ctx, `
		insert into parts (sku, name, description, unit_cost, unit_price)
		values ($1, $2, $3, $4, $5)
		returning `+partColumns,
		p.SKU, p.Name, p.Description, p.UnitCost, p.UnitPrice,
	)
	return scanPart(row)
}

// GetPart fetches one part by primary key.
func (r *CatalogRepository) GetPart(ctx context.Context, id string) (*domain.Part, error) {
	row := r.pool.QueryRow(ctx, `select `+partColumns+` from parts where id = $1`, id)
	part, err := scanPart(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("parts", err)
	}
	return part, err
}

// ListParts returns active parts ordered by SKU.
func (r *CatalogRepository) ListParts(ctx context.Context, includeInactive bool) ([]domain.Part, error) {
	rows, err := r.pool.Query(ctx, `
		select `+partColumns+` from parts
		where active or $1
		order by sku, id`,
		includeInactive,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []domain.Part
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, *part)
	}
	return parts, rows.Err()
}

// CreateBundle inserts a bundle with its items in one transaction.
func (r *CatalogRepository) CreateBundle(ctx context.Context, b *domain.Bundle) (*domain.Bundle, error) {
	var created *domain.Bundle

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			insert into bundles (name, description, price)
			values ($1, $2, $3)
			returning `+bundleColumns,
			b.Name, b.Description, b.Price,
		)
		var err error
		created, err = scanBundle(row)
		if err != nil {
			return err
		}

		for i := range b.Items {
			item := &b.Items[i]
			itemRow := tx.QueryRow(ctx, `
				insert into bundle_items (bundle_id, part_id, quantity)
				values ($1, $2, $3)
				returning `+bundleItemColumns,
				created.ID, item.PartID, item.Quantity,
			)
			bi, err := scanBundleItem(itemRow)
			if err != nil {
				return err
			}
			created.Items = append(created.Items, *bi)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetBundle fetches a bundle with its items.
func (r *CatalogRepository) GetBundle(ctx context.Context, id string) (*domain.Bundle, error) {
	row := r.pool.QueryRow(ctx, `select `+bundleColumns+` from bundles where id = $1`, id)
	bundle, err := scanBundle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("bundles", err)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		select `+bundleItemColumns+` from bundle_items
		where bundle_id = $1
		order by id`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		bi, err := scanBundleItem(rows)
		if err != nil {
			return nil, err
		}
		bundle.Items = append(bundle.Items, *bi)
	}
	return bundle, rows.Err()
}

// ListBundles returns bundles without items, newest first.
func (r *CatalogRepository) ListBundles(ctx context.Context, includeInactive bool) ([]domain.Bundle, error) {
	rows, err := r.pool.Query(ctx, `
		select `+bundleColumns+` from bundles
		where active or $1
		order by created_at desc, id`,
		includeInactive,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bundles []domain.Bundle
	for rows.Next() {
		bundle, err := scanBundle(rows)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, *bundle)
	}
	return bundles, rows.Err()
}

// UpdateBundle overwrites a bundle's fields and replaces its items in
// one transaction.
func (r *CatalogRepository) UpdateBundle(ctx context.Context, b *domain.Bundle) (*domain.Bundle, error) {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			update bundles
			set name = $2, description = $3, price = $4, active = $5, updated_at = now()
			where id = $1`,
			b.ID, b.Name, b.Description, b.Price, b.Active,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return notFound("bundles", pgx.ErrNoRows)
		}

		if _, err := tx.Exec(ctx, `delete from bundle_items where bundle_id = $1`, b.ID); err != nil {
			return err
		}
		for i := range b.Items {
			item := &b.Items[i]
			if _, err := tx.Exec(ctx, `
				insert into bundle_items (bundle_id, part_id, quantity)
				values ($1, $2, $3)`,
				b.ID, item.PartID, item.Quantity,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetBundle(ctx, b.ID)
}

// DeleteBundle removes a bundle; items cascade.
func (r *CatalogRepository) DeleteBundle(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `delete from bundles where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound("bundles", pgx.ErrNoRows)
	}
	return nil
}
