package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kjannette/ifsol-backend/internal/models"
)

const maxRecentComparisons = 100

// ComparisonRepo stores finished comparisons.
type ComparisonRepo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewComparisonRepo(pool *pgxpool.Pool) *ComparisonRepo {
	return &ComparisonRepo{pool: pool, now: time.Now}
}

func (r *ComparisonRepo) Record(ctx context.Context, c *models.ComparisonRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO comparisons (
		     id, product_name, product_price, release_date,
		     historical_sol_price, current_sol_price, sol_amount,
		     current_value, profit_loss, profit_loss_percentage, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.ProductName, c.ProductPrice, c.ReleaseDate,
		c.HistoricalSolPrice, c.CurrentSolPrice, c.SolAmount,
		c.CurrentValue, c.ProfitLoss, c.ProfitLossPercentage, c.CreatedAt,
	)
	return err
}

// GetRecent returns up to limit comparisons, newest first.
func (r *ComparisonRepo) GetRecent(ctx context.Context, limit int) ([]models.ComparisonRecord, error) {
	if limit <= 0 || limit > maxRecentComparisons {
		limit = maxRecentComparisons
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_name, product_price, release_date,
		        historical_sol_price, current_sol_price, sol_amount,
		        current_value, profit_loss, profit_loss_percentage, created_at
		 FROM comparisons ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ComparisonRecord
	for rows.Next() {
		var c models.ComparisonRecord
		if err := rows.Scan(
			&c.ID, &c.ProductName, &c.ProductPrice, &c.ReleaseDate,
			&c.HistoricalSolPrice, &c.CurrentSolPrice, &c.SolAmount,
			&c.CurrentValue, &c.ProfitLoss, &c.ProfitLossPercentage, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountToday counts comparisons recorded since midnight UTC.
func (r *ComparisonRepo) CountToday(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comparisons WHERE created_at >= $1`,
		StartOfDay(r.now()),
	).Scan(&n)
	return n, err
}
