package address

import (
	"context"
	"errors"
	"io"
	"log"

	"stockorders/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
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

func (r *postgresRepo) ListActiveByCustomer(ctx context.Context, customerID string) ([]domain.Address, error) {
	const q = `
SELECT id::text, customer_id::text, type, country, city, town, street_line, postal_code, active
FROM customer_addresses
WHERE customer_id = $1 AND active
ORDER BY type, city
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("address repo: list customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.Type, &a.Country, &a.City, &a.Town, &a.StreetLine, &a.PostalCode, &a.Active); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("address repo: list rows customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Create(ctx context.Context, a domain.Address) (*domain.Address, error) {
	const q = `
INSERT INTO customer_addresses (customer_id, type, country, city, town, street_line, postal_code, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
RETURNING id::text
`
	out := a
	out.Active = true
	err := r.pool.QueryRow(ctx, q, a.CustomerID, a.Type, a.Country, a.City, a.Town, a.StreetLine, a.PostalCode).Scan(&out.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrInvalidReference
		}
		r.logger.Printf("address repo: create customer_id=%s error=%v", a.CustomerID, err)
		return nil, err
	}
	return &out, nil
}
