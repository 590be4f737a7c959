package stock

import (
	"context"
	"io"
	"log"

	"stockorders/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.Stock, error) {
	const q = `
SELECT id::text, name, unit, price, barcode, active, created_at
FROM stocks
WHERE active
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("stock repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return scanStocks(rows)
}

func (r *postgresRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Stock, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const q = `
SELECT id::text, name, unit, price, barcode, active, created_at
FROM stocks
WHERE id = ANY($1::uuid[]) AND active
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("stock repo: list by ids error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return scanStocks(rows)
}

func scanStocks(rows pgx.Rows) ([]domain.Stock, error) {
	var result []domain.Stock
	for rows.Next() {
		var s domain.Stock
		if err := rows.Scan(&s.ID, &s.Name, &s.Unit, &s.Price, &s.Barcode, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
