package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines booking storage operations.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatus persists a new status with an optimistic-concurrency
	// guard: the write only applies when the stored updated_at still equals
	// expectedUpdatedAt. A stale token returns ErrConflict; a missing row
	// returns ErrNotFound.
	UpdateStatus(ctx context.Context, id string, status Status, expectedUpdatedAt time.Time) (*Booking, error)

	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a booking Repository backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// bookingColumns are the joined select columns shared by GetByID and List.
// Missing joins degrade to placeholder display strings instead of failing.
func bookingColumns() []string {
	return []string{
		"b.id", "b.service_id", "b.customer_id", "b.provider_id",
		"COALESCE(s.title, 'Unknown Service')",
		"COALESCE(s.image_url, '')",
		"COALESCE(cu.display_name, 'Unknown Customer')",
		"COALESCE(pr.display_name, 'Unknown Provider')",
		"b.date", "b.start_time", "b.end_time", "b.duration_minutes",
		"b.status", "b.payment_status", "b.total_amount", "b.commission",
		"b.notes", "b.created_at", "b.updated_at",
	}
}

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	dest := []any{
		&b.ID, &b.ServiceID, &b.CustomerID, &b.ProviderID,
		&b.ServiceTitle, &b.ServiceImage, &b.CustomerName, &b.ProviderName,
		&b.Date, &b.StartTime, &b.EndTime, &b.Duration,
		&b.Status, &b.PaymentStatus, &b.TotalAmount, &b.Commission,
		&b.Notes, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"service_id", "customer_id", "provider_id",
			"date", "start_time", "end_time", "duration_minutes",
			"status", "payment_status", "total_amount", "commission", "notes",
		).
		Values(
			b.ServiceID, b.CustomerID, b.ProviderID,
			b.Date, b.StartTime, b.EndTime, b.Duration,
			b.Status, b.PaymentStatus, b.TotalAmount, b.Commission, b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns()...).
		From("public.bookings b").
		LeftJoin("public.services s ON b.service_id = s.id").
		LeftJoin("public.users cu ON b.customer_id = cu.id").
		LeftJoin("public.users pr ON b.provider_id = pr.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, args...), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(bookingColumns(), "count(*) OVER() AS total_count")
	query := psql.Select(cols...).
		From("public.bookings b").
		LeftJoin("public.services s ON b.service_id = s.id").
		LeftJoin("public.users cu ON b.customer_id = cu.id").
		LeftJoin("public.users pr ON b.provider_id = pr.id")

	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"b.customer_id": filter.CustomerID})
	}
	if filter.ProviderID != "" {
		query = query.Where(squirrel.Eq{"b.provider_id": filter.ProviderID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	// Newest-created first
	query = query.OrderBy("b.created_at DESC")

	// Pagination
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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status, expectedUpdatedAt time.Time) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"updated_at": expectedUpdatedAt}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Distinguish a stale concurrency token from a missing row.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}

	return r.GetByID(ctx, id)
}

func (r *pgxRepository) UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update payment status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update payment status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}
