package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kjannette/ifsol-backend/internal/models"
)

// PriceRepo stores live SOL price snapshots.
type PriceRepo struct {
	pool *pgxpool.Pool
}

func NewPriceRepo(pool *pgxpool.Pool) *PriceRepo {
	return &PriceRepo{pool: pool}
}

func (r *PriceRepo) Record(ctx context.Context, price float64, ts time.Time, source string) (*models.PriceSnapshot, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO price_history (timestamp, price, day, source)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, timestamp, price, day, source, created_at`,
		ts, price, Day(ts), source,
	)
	return scanSnapshot(row)
}

// ObserveSpot records a live current price.
func (r *PriceRepo) ObserveSpot(ctx context.Context, price float64, at time.Time, source string) error {
	_, err := r.Record(ctx, price, at, source)
	return err
}

func (r *PriceRepo) GetByDay(ctx context.Context, day string) ([]models.PriceSnapshot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, timestamp, price, day, source, created_at
		 FROM price_history WHERE day = $1 ORDER BY timestamp ASC`,
		day,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSnapshots(rows)
}

// GetAvailableDays returns up to 30 most recent days with snapshots, oldest first.
func (r *PriceRepo) GetAvailableDays(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT day FROM (
		     SELECT DISTINCT day FROM price_history ORDER BY day DESC LIMIT 30
		 ) recent ORDER BY day ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d.Format(dayLayout))
	}
	return days, rows.Err()
}

// GetLatest returns nil when nothing has been recorded.
func (r *PriceRepo) GetLatest(ctx context.Context) (*models.PriceSnapshot, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, timestamp, price, day, source, created_at
		 FROM price_history ORDER BY timestamp DESC LIMIT 1`,
	)
	p, err := scanSnapshot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// --- scan helpers ---

type scannable interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scannable) (*models.PriceSnapshot, error) {
	var p models.PriceSnapshot
	var day time.Time
	err := row.Scan(&p.ID, &p.Timestamp, &p.Price, &day, &p.Source, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Day = day.Format(dayLayout)
	return &p, nil
}

type rowsIter interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectSnapshots(rows rowsIter) ([]models.PriceSnapshot, error) {
	var out []models.PriceSnapshot
	for rows.Next() {
		p, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
