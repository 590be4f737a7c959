package report

import (
	"context"
	"sort"
	"time"

	"stockorders/internal/domain"

	"github.com/shopspring/decimal"
)

// Service is the reporting engine. Every report is a pure projection over
// the order graph loaded from the store: the repository returns all rows
// and the grouping, filtering and sorting happen here, with
// domain.Visible as the only soft-delete filter.
type Service struct {
	repo graphRepo
}

type graphRepo interface {
	ListGraph(ctx context.Context) ([]domain.Order, error)
	ListGraphByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

func New(repo graphRepo) *Service {
	return &Service{repo: repo}
}

// CustomerOrderSummary aggregates one customer's orders. TotalAmount is
// the tax-exclusive sum; GrandTotal the tax-inclusive one.
type CustomerOrderSummary struct {
	CustomerID          string          `json:"customerId"`
	CustomerName        string          `json:"customerName"`
	CustomerEmail       string          `json:"customerEmail"`
	OrderCount          int             `json:"orderCount"`
	CancelledOrderCount int             `json:"cancelledOrderCount"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	TotalTax            decimal.Decimal `json:"totalTax"`
	GrandTotal          decimal.Decimal `json:"grandTotal"`
	LastOrderDate       time.Time       `json:"lastOrderDate"`
}

// CustomerLineInfo describes one customer's order lines for a product.
type CustomerLineInfo struct {
	CustomerName   string   `json:"customerName"`
	CustomerEmail  string   `json:"customerEmail"`
	Addresses      []string `json:"addresses"`
	OrderLineCount int      `json:"orderLineCount"`
}

// ProductCustomers lists the customers ordering one product.
type ProductCustomers struct {
	StockID        string             `json:"stockId"`
	StockName      string             `json:"stockName"`
	OrderLineCount int                `json:"orderLineCount"`
	Customers      []CustomerLineInfo `json:"customers"`
}

// LineDetail is one order line rendered with its captured unit price.
type LineDetail struct {
	StockName string          `json:"stockName"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// MultiQuantityOrder is an order containing at least one line with
// quantity above one; only the qualifying lines are listed.
type MultiQuantityOrder struct {
	OrderID         string          `json:"orderId"`
	OrderNo         string          `json:"orderNo"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	OrderDate       time.Time       `json:"orderDate"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Tax             decimal.Decimal `json:"tax"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Lines           []LineDetail    `json:"lines"`
}

// DifferentAddressOrder is an order delivered somewhere other than its
// invoice address.
type DifferentAddressOrder struct {
	OrderID         string          `json:"orderId"`
	OrderNo         string          `json:"orderNo"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	OrderDate       time.Time       `json:"orderDate"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	DeliveryAddress string          `json:"deliveryAddress"`
	InvoiceAddress  string          `json:"invoiceAddress"`
}

// OrderDetails is the full per-order projection used by the geography,
// named-customer and order-history reports.
type OrderDetails struct {
	OrderID         string          `json:"orderId"`
	OrderNo         string          `json:"orderNo"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	OrderDate       time.Time       `json:"orderDate"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Tax             decimal.Decimal `json:"tax"`
	DeliveryAddress string          `json:"deliveryAddress"`
	InvoiceAddress  string          `json:"invoiceAddress"`
	Active          bool            `json:"active"`
	Lines           []LineDetail    `json:"lines"`
}

// CustomerOrderSummaries groups orders by customer, counting active and
// cancelled orders separately and summing active-order amounts. Customers
// whose orders are all cancelled still appear, with zero aggregates.
// Sorted by grand total, descending.
func (s *Service) CustomerOrderSummaries(ctx context.Context) ([]CustomerOrderSummary, error) {
	orders, err := s.repo.ListGraph(ctx)
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[string]*CustomerOrderSummary)
	var customerOrder []string
	for _, o := range orders {
		sum, ok := byCustomer[o.CustomerID]
		if !ok {
			sum = &CustomerOrderSummary{
				CustomerID:    o.CustomerID,
				CustomerName:  o.Customer.Name,
				CustomerEmail: o.Customer.Email,
				TotalAmount:   decimal.Zero,
				TotalTax:      decimal.Zero,
				GrandTotal:    decimal.Zero,
			}
			byCustomer[o.CustomerID] = sum
			customerOrder = append(customerOrder, o.CustomerID)
		}
		if !domain.Visible(o) {
			sum.CancelledOrderCount++
			continue
		}
		sum.OrderCount++
		sum.TotalAmount = sum.TotalAmount.Add(o.TotalPrice.Sub(o.Tax))
		sum.TotalTax = sum.TotalTax.Add(o.Tax)
		sum.GrandTotal = sum.GrandTotal.Add(o.TotalPrice)
		if o.OrderDate.After(sum.LastOrderDate) {
			sum.LastOrderDate = o.OrderDate
		}
	}

	result := make([]CustomerOrderSummary, 0, len(customerOrder))
	for _, id := range customerOrder {
		result = append(result, *byCustomer[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].GrandTotal.GreaterThan(result[j].GrandTotal)
	})
	return result, nil
}

// ProductCustomersReport groups active lines on active orders by product
// and, within each product, by customer with the distinct delivery
// addresses used. Products with a single order line are omitted. Sorted
// by total order-line count, descending.
func (s *Service) ProductCustomersReport(ctx context.Context) ([]ProductCustomers, error) {
	orders, err := s.repo.ListGraph(ctx)
	if err != nil {
		return nil, err
	}

	type customerLines struct {
		info      CustomerLineInfo
		seenAddrs map[string]bool
	}
	type productGroup struct {
		report        ProductCustomers
		byCustomer    map[string]*customerLines
		customerOrder []string
	}

	byStock := make(map[string]*productGroup)
	var stockOrder []string
	for _, o := range orders {
		if !domain.Visible(o) {
			continue
		}
		for _, line := range o.Lines {
			if !domain.Visible(line) {
				continue
			}
			group, ok := byStock[line.StockID]
			if !ok {
				group = &productGroup{
					report:     ProductCustomers{StockID: line.StockID, StockName: line.Stock.Name},
					byCustomer: make(map[string]*customerLines),
				}
				byStock[line.StockID] = group
				stockOrder = append(stockOrder, line.StockID)
			}
			group.report.OrderLineCount++

			cl, ok := group.byCustomer[o.CustomerID]
			if !ok {
				cl = &customerLines{
					info: CustomerLineInfo{
						CustomerName:  o.Customer.Name,
						CustomerEmail: o.Customer.Email,
					},
					seenAddrs: make(map[string]bool),
				}
				group.byCustomer[o.CustomerID] = cl
				group.customerOrder = append(group.customerOrder, o.CustomerID)
			}
			cl.info.OrderLineCount++
			addr := o.DeliveryAddress.Format()
			if !cl.seenAddrs[addr] {
				cl.seenAddrs[addr] = true
				cl.info.Addresses = append(cl.info.Addresses, addr)
			}
		}
	}

	var result []ProductCustomers
	for _, stockID := range stockOrder {
		group := byStock[stockID]
		if group.report.OrderLineCount <= 1 {
			continue
		}
		for _, customerID := range group.customerOrder {
			group.report.Customers = append(group.report.Customers, group.byCustomer[customerID].info)
		}
		result = append(result, group.report)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OrderLineCount > result[j].OrderLineCount
	})
	return result, nil
}

// MultiQuantityOrders lists active orders holding at least one active
// line with quantity above one, newest first.
func (s *Service) MultiQuantityOrders(ctx context.Context) ([]MultiQuantityOrder, error) {
	orders, err := s.repo.ListGraph(ctx)
	if err != nil {
		return nil, err
	}

	var result []MultiQuantityOrder
	for _, o := range orders {
		if !domain.Visible(o) {
			continue
		}
		var qualifying []LineDetail
		for _, line := range o.Lines {
			if domain.Visible(line) && line.Quantity > 1 {
				qualifying = append(qualifying, toLineDetail(line))
			}
		}
		if len(qualifying) == 0 {
			continue
		}
		result = append(result, MultiQuantityOrder{
			OrderID:         o.ID,
			OrderNo:         o.OrderNo,
			CustomerName:    o.Customer.Name,
			CustomerEmail:   o.Customer.Email,
			OrderDate:       o.OrderDate,
			TotalPrice:      o.TotalPrice,
			Tax:             o.Tax,
			DeliveryAddress: o.DeliveryAddress.Format(),
			Lines:           qualifying,
		})
	}
	sortByDateDesc(result, func(m MultiQuantityOrder) time.Time { return m.OrderDate })
	return result, nil
}

// DifferentAddressOrders lists active orders whose delivery and invoice
// addresses differ, newest first.
func (s *Service) DifferentAddressOrders(ctx context.Context) ([]DifferentAddressOrder, error) {
	orders, err := s.repo.ListGraph(ctx)
	if err != nil {
		return nil, err
	}

	var result []DifferentAddressOrder
	for _, o := range orders {
		if !domain.Visible(o) || o.DeliveryAddressID == o.InvoiceAddressID {
			continue
		}
		result = append(result, DifferentAddressOrder{
			OrderID:         o.ID,
			OrderNo:         o.OrderNo,
			CustomerName:    o.Customer.Name,
			CustomerEmail:   o.Customer.Email,
			OrderDate:       o.OrderDate,
			TotalPrice:      o.TotalPrice,
			DeliveryAddress: o.DeliveryAddress.Format(),
			InvoiceAddress:  o.InvoiceAddress.Format(),
		})
	}
	sortByDateDesc(result, func(d DifferentAddressOrder) time.Time { return d.OrderDate })
	return result, nil
}

// OrdersByCity lists active orders delivered to the given city, newest
// first, with full line detail.
func (s *Service) OrdersByCity(ctx context.Context, city string) ([]OrderDetails, error) {
	orders, err := s.repo.ListGraph(ctx)
	if err != nil {
		return nil, err
	}
	return projectDetails(orders, func(o domain.Order) bool {
		return domain.Visible(o) && o.DeliveryAddress.City == city
	}), nil
}

// OrdersByCustomerName lists active orders placed by customers with the
// given display name, newest first, with full line detail.
func (s *Service) OrdersByCustomerName(ctx context.Context, name string) ([]OrderDetails, error) {
	orders, err := s.repo.ListGraph(ctx)
	if err != nil {
		return nil, err
	}
	return projectDetails(orders, func(o domain.Order) bool {
		return domain.Visible(o) && o.Customer.Name == name
	}), nil
}

// CustomerOrderDetails lists every order of one customer, cancelled ones
// included, newest first.
func (s *Service) CustomerOrderDetails(ctx context.Context, customerID string) ([]OrderDetails, error) {
	orders, err := s.repo.ListGraphByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return projectDetails(orders, func(domain.Order) bool { return true }), nil
}

func projectDetails(orders []domain.Order, include func(domain.Order) bool) []OrderDetails {
	var result []OrderDetails
	for _, o := range orders {
		if !include(o) {
			continue
		}
		var lines []LineDetail
		for _, line := range o.Lines {
			if domain.Visible(line) {
				lines = append(lines, toLineDetail(line))
			}
		}
		result = append(result, OrderDetails{
			OrderID:         o.ID,
			OrderNo:         o.OrderNo,
			CustomerName:    o.Customer.Name,
			CustomerEmail:   o.Customer.Email,
			OrderDate:       o.OrderDate,
			TotalPrice:      o.TotalPrice,
			Tax:             o.Tax,
			DeliveryAddress: o.DeliveryAddress.Format(),
			InvoiceAddress:  o.InvoiceAddress.Format(),
			Active:          o.Active,
			Lines:           lines,
		})
	}
	sortByDateDesc(result, func(d OrderDetails) time.Time { return d.OrderDate })
	return result
}

func toLineDetail(line domain.OrderLine) LineDetail {
	return LineDetail{
		StockName: line.Stock.Name,
		Quantity:  line.Quantity,
		UnitPrice: line.UnitPrice,
		LineTotal: line.Total(),
	}
}

func sortByDateDesc[T any](items []T, date func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return date(items[i]).After(date(items[j]))
	})
}
