package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines service-listing storage operations.
type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, filter Filter) ([]*Listing, int, error)
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a listing Repository backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, l *Listing) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.services").
		Columns("provider_id", "title", "description", "price", "category", "image_url", "is_active").
		Values(l.ProviderID, l.Title, l.Description, l.Price, l.Category, l.ImageURL, l.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create service query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Listing, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"s.id", "s.provider_id", "COALESCE(u.display_name, 'Unknown Provider')",
		"s.title", "s.description", "s.price", "s.category", "s.image_url",
		"s.is_active", "s.created_at", "s.updated_at",
	).
		From("public.services s").
		LeftJoin("public.users u ON s.provider_id = u.id").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get service query failed: %w", err)
	}

	var l Listing
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.ProviderID, &l.ProviderName,
		&l.Title, &l.Description, &l.Price, &l.Category, &l.ImageURL,
		&l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service failed: %w", err)
	}
	return &l, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Listing, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"s.id", "s.provider_id", "COALESCE(u.display_name, 'Unknown Provider')",
		"s.title", "s.description", "s.price", "s.category", "s.image_url",
		"s.is_active", "s.created_at", "s.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.services s").
		LeftJoin("public.users u ON s.provider_id = u.id")

	if filter.ProviderID != "" {
		query = query.Where(squirrel.Eq{"s.provider_id": filter.ProviderID})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"s.category": filter.Category})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"s.is_active": *filter.IsActive})
	}

	query = query.OrderBy("s.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list services query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list services failed: %w", err)
	}
	defer rows.Close()

	var listings []*Listing
	var total int

	for rows.Next() {
		var l Listing
		if err := rows.Scan(
			&l.ID, &l.ProviderID, &l.ProviderName,
			&l.Title, &l.Description, &l.Price, &l.Category, &l.ImageURL,
			&l.IsActive, &l.CreatedAt, &l.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan service failed: %w", err)
		}
		listings = append(listings, &l)
	}

	return listings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, l *Listing) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.services").
		Set("title", l.Title).
		Set("description", l.Description).
		Set("price", l.Price).
		Set("category", l.Category).
		Set("image_url", l.ImageURL).
		Set("is_active", l.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": l.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update service query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update service failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete service query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete service failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
