package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stockorders/internal/domain"
	orderrepo "stockorders/internal/repository/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// taxRate is applied to the order total at creation time and stored.
var taxRate = decimal.NewFromFloat(0.20)

// Service is the order aggregation engine: it computes totals and tax at
// creation time and maintains the active/cancelled lifecycle.
type Service struct {
	repo      orderRepo
	customers customerRepo
	addresses addressRepo
	stocks    stockRepo
	notifier  Notifier
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	Cancel(ctx context.Context, orderID, customerID string) (*orderrepo.CancelResult, error)
	ListWithCustomer(ctx context.Context) ([]domain.Order, error)
	ListActiveByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

type customerRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

type addressRepo interface {
	ListActiveByCustomer(ctx context.Context, customerID string) ([]domain.Address, error)
}

type stockRepo interface {
	ListByIDs(ctx context.Context, ids []string) ([]domain.Stock, error)
}

// Notifier receives fire-and-forget order events. Implementations must not
// block request handling; failures never affect the persisted order.
type Notifier interface {
	Broadcast(event string, payload any)
}

func New(repo orderRepo, customers customerRepo, addresses addressRepo, stocks stockRepo, notifier Notifier) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		addresses: addresses,
		stocks:    stocks,
		notifier:  notifier,
	}
}

// LineInput is one requested (stock, quantity) pair.
type LineInput struct {
	StockID  string `json:"stockId"`
	Quantity int    `json:"quantity"`
}

// CreateInput captures an order placement request.
type CreateInput struct {
	CustomerID        string      `json:"customerId"`
	DeliveryAddressID string      `json:"deliveryAddressId"`
	InvoiceAddressID  string      `json:"invoiceAddressId"`
	Lines             []LineInput `json:"lines"`
}

// Summary is the record returned for a created or listed order.
type Summary struct {
	ID           string          `json:"id"`
	OrderNo      string          `json:"orderNo"`
	CustomerName string          `json:"customerName"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Tax          decimal.Decimal `json:"tax"`
	OrderDate    time.Time       `json:"orderDate"`
}

// Create places an order: it validates the request, captures unit prices
// from the catalog, computes the total and 20% tax with exact decimal
// arithmetic, and persists the order with its lines atomically.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Summary, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: at least one order line required", domain.ErrValidation)
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
		}
		if strings.TrimSpace(line.StockID) == "" {
			return nil, fmt.Errorf("%w: stock id required", domain.ErrValidation)
		}
	}
	if strings.TrimSpace(in.DeliveryAddressID) == "" || strings.TrimSpace(in.InvoiceAddressID) == "" {
		return nil, fmt.Errorf("%w: delivery and invoice address required", domain.ErrValidation)
	}

	customer, err := s.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAddressOwnership(ctx, customer.ID, in.DeliveryAddressID, in.InvoiceAddressID); err != nil {
		return nil, err
	}

	stocks, err := s.resolveStocks(ctx, in.Lines)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.OrderLine, 0, len(in.Lines))
	total := decimal.Zero
	for _, line := range in.Lines {
		stock := stocks[line.StockID]
		unitPrice := stock.Price
		lines = append(lines, domain.OrderLine{
			StockID:   line.StockID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			Active:    true,
		})
		total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	tax := total.Mul(taxRate).Round(2)

	created, err := s.repo.Create(ctx, domain.Order{
		OrderNo:           newOrderNo(),
		CustomerID:        customer.ID,
		TotalPrice:        total,
		Tax:               tax,
		DeliveryAddressID: in.DeliveryAddressID,
		InvoiceAddressID:  in.InvoiceAddressID,
		Lines:             lines,
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("orderCreated", map[string]any{
		"orderNo":      created.OrderNo,
		"customerName": customer.Name,
		"totalPrice":   created.TotalPrice,
		"orderDate":    created.OrderDate,
	})

	return &Summary{
		ID:           created.ID,
		OrderNo:      created.OrderNo,
		CustomerName: customer.Name,
		TotalPrice:   created.TotalPrice,
		Tax:          created.Tax,
		OrderDate:    created.OrderDate,
	}, nil
}

// Cancel flips the order's active flag. Unknown id, wrong customer, and
// already-cancelled all collapse into false with no error.
func (s *Service) Cancel(ctx context.Context, orderID, customerID string) (bool, error) {
	res, err := s.repo.Cancel(ctx, orderID, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	s.broadcast("orderCancelled", map[string]any{
		"orderId":      res.OrderID,
		"orderNo":      res.OrderNo,
		"customerName": res.CustomerName,
	})
	return true, nil
}

// List returns a summary of every order, active or cancelled.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	orders, err := s.repo.ListWithCustomer(ctx)
	if err != nil {
		return nil, err
	}
	return toSummaries(orders), nil
}

// ListByCustomer returns one customer's active orders, newest first.
func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]Summary, error) {
	orders, err := s.repo.ListActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toSummaries(orders), nil
}

func (s *Service) checkAddressOwnership(ctx context.Context, customerID, deliveryID, invoiceID string) error {
	addresses, err := s.addresses.ListActiveByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	owned := make(map[string]bool, len(addresses))
	for _, a := range addresses {
		owned[a.ID] = true
	}
	if !owned[deliveryID] {
		return fmt.Errorf("%w: delivery address %s", domain.ErrInvalidReference, deliveryID)
	}
	if !owned[invoiceID] {
		return fmt.Errorf("%w: invoice address %s", domain.ErrInvalidReference, invoiceID)
	}
	return nil
}

func (s *Service) resolveStocks(ctx context.Context, lines []LineInput) (map[string]domain.Stock, error) {
	distinct := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.StockID] {
			seen[line.StockID] = true
			distinct = append(distinct, line.StockID)
		}
	}

	stocks, err := s.stocks.ListByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}
	resolved := make(map[string]domain.Stock, len(stocks))
	for _, st := range stocks {
		resolved[st.ID] = st
	}
	for _, id := range distinct {
		if _, ok := resolved[id]; !ok {
			return nil, fmt.Errorf("%w: stock %s", domain.ErrInvalidReference, id)
		}
	}
	return resolved, nil
}

func (s *Service) broadcast(event string, payload map[string]any) {
	if s.notifier == nil {
		return
	}
	go s.notifier.Broadcast(event, payload)
}

func toSummaries(orders []domain.Order) []Summary {
	result := make([]Summary, 0, len(orders))
	for _, o := range orders {
		name := ""
		if o.Customer != nil {
			name = o.Customer.Name
		}
		result = append(result, Summary{
			ID:           o.ID,
			OrderNo:      o.OrderNo,
			CustomerName: name,
			TotalPrice:   o.TotalPrice,
			Tax:          o.Tax,
			OrderDate:    o.OrderDate,
		})
	}
	return result
}

// newOrderNo derives a short order number from a random UUID.
func newOrderNo() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
