package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate persisted at order-placement time. The attached
// Customer, address and stock records are populated by graph reads for
// reporting and are nil on plain rows.
type Order struct {
	ID                string          `json:"id"`
	OrderNo           string          `json:"orderNo"`
	CustomerID        string          `json:"customerId"`
	OrderDate         time.Time       `json:"orderDate"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	Tax               decimal.Decimal `json:"tax"`
	DeliveryAddressID string          `json:"deliveryAddressId"`
	InvoiceAddressID  string          `json:"invoiceAddressId"`
	Active            bool            `json:"active"`
	Lines             []OrderLine     `json:"lines,omitempty"`

	Customer        *Customer `json:"-"`
	DeliveryAddress *Address  `json:"-"`
	InvoiceAddress  *Address  `json:"-"`
}

func (o Order) Visible() bool { return o.Active }

// OrderLine carries one stock reference and the unit price captured when
// the order was created.
type OrderLine struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId"`
	StockID   string          `json:"stockId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Active    bool            `json:"active"`

	Stock *Stock `json:"-"`
}

func (l OrderLine) Visible() bool { return l.Active }

// Total is quantity times the captured unit price.
func (l OrderLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
