package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dateLayout = "2006-01-02"

// AvailabilityRepository tracks the per-date order counter that caps daily
// order volume.
type AvailabilityRepository struct {
	pool  *pgxpool.Pool
	limit int
}

func NewAvailabilityRepository(pool *pgxpool.Pool, orderLimitPerDay int) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool, limit: orderLimitPerDay}
}

// BlockedDates returns every date whose counter has reached the daily limit.
// A full scan is acceptable at this scale.
func (r *AvailabilityRepository) BlockedDates(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT order_date FROM daily_orders WHERE order_count >= $1`, r.limit)
	if err != nil {
		return nil, fmt.Errorf("query daily_orders: %w", err)
	}
	defer rows.Close()

	blocked := map[string]struct{}{}
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan order_date: %w", err)
		}
		blocked[day.Format(dateLayout)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return blocked, nil
}

// CountFor is the authoritative single-date read used for the submit-time
// capacity re-check.
func (r *AvailabilityRepository) CountFor(ctx context.Context, date string) (int, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}

	var count int
	err = r.pool.QueryRow(ctx,
		`SELECT order_count FROM daily_orders WHERE order_date = $1`, day).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query order_count: %w", err)
	}
	return count, nil
}

// IncrementDate reserves one slot on the date. The upsert is a single atomic
// server-side operation, never a read-then-write round trip, so concurrent
// submitters cannot lose increments. Returns the post-increment count.
func (r *AvailabilityRepository) IncrementDate(ctx context.Context, date string) (int, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}

	var count int
	err = r.pool.QueryRow(ctx,
		`INSERT INTO daily_orders (order_date, order_count, updated_at)
		 VALUES ($1, 1, now())
		 ON CONFLICT (order_date)
		 DO UPDATE SET order_count = daily_orders.order_count + 1, updated_at = now()
		 RETURNING order_count`, day).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment order_count: %w", err)
	}
	return count, nil
}
