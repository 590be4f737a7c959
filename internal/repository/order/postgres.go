package order

import (
	"context"
	"errors"
	"io"
	"log"

	"stockorders/internal/domain"

	"github.com/jackc/pgx/v5"
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

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const orderQ = `
INSERT INTO orders (order_no, customer_id, total_price, tax, delivery_address_id, invoice_address_id, active)
VALUES ($1, $2, $3, $4, $5, $6, TRUE)
RETURNING id::text, order_date
`
	out := o
	out.Active = true
	if err := tx.QueryRow(ctx, orderQ,
		o.OrderNo,
		o.CustomerID,
		o.TotalPrice,
		o.Tax,
		o.DeliveryAddressID,
		o.InvoiceAddressID,
	).Scan(&out.ID, &out.OrderDate); err != nil {
		return nil, translateErr(err)
	}

	const lineQ = `
INSERT INTO order_lines (order_id, stock_id, quantity, unit_price, active)
VALUES ($1, $2, $3, $4, TRUE)
RETURNING id::text
`
	out.Lines = make([]domain.OrderLine, 0, len(o.Lines))
	for _, line := range o.Lines {
		l := line
		l.OrderID = out.ID
		l.Active = true
		if err := tx.QueryRow(ctx, lineQ, out.ID, line.StockID, line.Quantity, line.UnitPrice).Scan(&l.ID); err != nil {
			return nil, translateErr(err)
		}
		out.Lines = append(out.Lines, l)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Cancel(ctx context.Context, orderID, customerID string) (*CancelResult, error) {
	const q = `
UPDATE orders o
SET active = FALSE
FROM customers c
WHERE o.id = $1 AND o.customer_id = $2 AND o.active AND c.id = o.customer_id
RETURNING o.id::text, o.order_no, c.name
`
	var res CancelResult
	if err := r.pool.QueryRow(ctx, q, orderID, customerID).Scan(&res.OrderID, &res.OrderNo, &res.CustomerName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: cancel id=%s error=%v", orderID, err)
		return nil, err
	}
	return &res, nil
}

const orderColumns = `
o.id::text, o.order_no, o.customer_id::text, o.order_date, o.total_price, o.tax,
o.delivery_address_id::text, o.invoice_address_id::text, o.active,
c.id::text, c.name, c.email, c.phone, c.active, c.created_at,
da.id::text, da.customer_id::text, da.type, da.country, da.city, da.town, da.street_line, da.postal_code, da.active,
ia.id::text, ia.customer_id::text, ia.type, ia.country, ia.city, ia.town, ia.street_line, ia.postal_code, ia.active
`

const orderJoins = `
FROM orders o
JOIN customers c ON c.id = o.customer_id
JOIN customer_addresses da ON da.id = o.delivery_address_id
JOIN customer_addresses ia ON ia.id = o.invoice_address_id
`

func (r *postgresRepo) ListGraph(ctx context.Context) ([]domain.Order, error) {
	orders, err := r.fetchOrders(ctx, "SELECT "+orderColumns+orderJoins+" ORDER BY o.order_date DESC")
	if err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *postgresRepo) ListGraphByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	orders, err := r.fetchOrders(ctx, "SELECT "+orderColumns+orderJoins+" WHERE o.customer_id = $1 ORDER BY o.order_date DESC", customerID)
	if err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *postgresRepo) ListWithCustomer(ctx context.Context) ([]domain.Order, error) {
	return r.fetchOrders(ctx, "SELECT "+orderColumns+orderJoins+" ORDER BY o.order_date DESC")
}

func (r *postgresRepo) ListActiveByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return r.fetchOrders(ctx, "SELECT "+orderColumns+orderJoins+" WHERE o.customer_id = $1 AND o.active ORDER BY o.order_date DESC", customerID)
}

func (r *postgresRepo) fetchOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: fetch error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		var c domain.Customer
		var da, ia domain.Address
		if err := rows.Scan(
			&o.ID, &o.OrderNo, &o.CustomerID, &o.OrderDate, &o.TotalPrice, &o.Tax,
			&o.DeliveryAddressID, &o.InvoiceAddressID, &o.Active,
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Active, &c.CreatedAt,
			&da.ID, &da.CustomerID, &da.Type, &da.Country, &da.City, &da.Town, &da.StreetLine, &da.PostalCode, &da.Active,
			&ia.ID, &ia.CustomerID, &ia.Type, &ia.Country, &ia.City, &ia.Town, &ia.StreetLine, &ia.PostalCode, &ia.Active,
		); err != nil {
			return nil, err
		}
		o.Customer = &c
		o.DeliveryAddress = &da
		o.InvoiceAddress = &ia
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: fetch rows error=%v", err)
		return nil, err
	}
	return result, nil
}

// attachLines loads the lines for the given orders in one query and
// distributes them by order id.
func (r *postgresRepo) attachLines(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
	}

	const q = `
SELECT l.id::text, l.order_id::text, l.stock_id::text, l.quantity, l.unit_price, l.active,
       s.id::text, s.name, s.unit, s.price, s.barcode, s.active, s.created_at
FROM order_lines l
JOIN stocks s ON s.id = l.stock_id
WHERE l.order_id = ANY($1::uuid[])
ORDER BY l.order_id
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("order repo: lines error=%v", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.OrderLine
		var s domain.Stock
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.StockID, &l.Quantity, &l.UnitPrice, &l.Active,
			&s.ID, &s.Name, &s.Unit, &s.Price, &s.Barcode, &s.Active, &s.CreatedAt,
		); err != nil {
			return err
		}
		l.Stock = &s
		i := index[l.OrderID]
		orders[i].Lines = append(orders[i].Lines, l)
	}
	return rows.Err()
}

func translateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrAlreadyExists
		case "23503":
			return domain.ErrInvalidReference
		}
	}
	return err
}
