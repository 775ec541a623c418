package dispute

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines dispute storage operations.
type Repository interface {
	Create(ctx context.Context, d *Dispute) error
	GetByID(ctx context.Context, id string) (*Dispute, error)
	List(ctx context.Context, filter Filter) ([]*Dispute, int, error)
	Update(ctx context.Context, d *Dispute) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a dispute Repository backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var disputeColumns = []string{
	"id", "booking_id", "customer_id", "provider_id",
	"subject", "description", "status", "priority",
	"resolution", "refund_amount", "created_at", "updated_at",
}

func scanDispute(row pgx.Row, d *Dispute, extra ...any) error {
	dest := []any{
		&d.ID, &d.BookingID, &d.CustomerID, &d.ProviderID,
		&d.Subject, &d.Description, &d.Status, &d.Priority,
		&d.Resolution, &d.RefundAmount, &d.CreatedAt, &d.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) Create(ctx context.Context, d *Dispute) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.disputes").
		Columns("booking_id", "customer_id", "provider_id", "subject", "description", "status", "priority").
		Values(d.BookingID, d.CustomerID, d.ProviderID, d.Subject, d.Description, d.Status, d.Priority).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create dispute query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Dispute, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(disputeColumns...).
		From("public.disputes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get dispute query failed: %w", err)
	}

	var d Dispute
	if err := scanDispute(r.pool.QueryRow(ctx, query, args...), &d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get dispute failed: %w", err)
	}
	return &d, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Dispute, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, disputeColumns...), "count(*) OVER() AS total_count")
	query := psql.Select(cols...).From("public.disputes")

	if filter.BookingID != "" {
		query = query.Where(squirrel.Eq{"booking_id": filter.BookingID})
	}
	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"customer_id": filter.CustomerID})
	}
	if filter.ProviderID != "" {
		query = query.Where(squirrel.Eq{"provider_id": filter.ProviderID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	query = query.OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("build list disputes query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list disputes failed: %w", err)
	}
	defer rows.Close()

	var disputes []*Dispute
	var total int

	for rows.Next() {
		var d Dispute
		if err := scanDispute(rows, &d, &total); err != nil {
			return nil, 0, fmt.Errorf("scan dispute failed: %w", err)
		}
		disputes = append(disputes, &d)
	}

	return disputes, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, d *Dispute) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.disputes").
		Set("status", d.Status).
		Set("priority", d.Priority).
		Set("resolution", d.Resolution).
		Set("refund_amount", d.RefundAmount).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": d.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update dispute query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update dispute failed: %w", err)
	}
	return nil
}
