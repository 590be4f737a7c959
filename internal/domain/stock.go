package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is a catalog entry referenced (never owned) by order lines.
type Stock struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	Barcode   string          `json:"barcode"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (s Stock) Visible() bool { return s.Active }
