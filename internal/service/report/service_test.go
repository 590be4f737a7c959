package report

import (
	"context"
	"testing"
	"time"

	"stockorders/internal/domain"

	"github.com/shopspring/decimal"
)

type stubGraphRepo struct {
	orders []domain.Order
	err    error
}

func (s *stubGraphRepo) ListGraph(_ context.Context) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubGraphRepo) ListGraphByCustomer(_ context.Context, customerID string) ([]domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Order
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func day(n int) time.Time {
	return time.Date(2025, 6, n, 10, 0, 0, 0, time.UTC)
}

// fixtureGraph builds a small order graph with three customers:
// Ali has two active orders and a cancelled one, Ayşe one active order,
// and Cem only a cancelled order.
func fixtureGraph() *stubGraphRepo {
	ali := &domain.Customer{ID: "ali", Name: "Ali Veli", Email: "ali@mail.com", Active: true}
	ayse := &domain.Customer{ID: "ayse", Name: "Ayşe Kaya", Email: "ayse@mail.com", Active: true}
	cem := &domain.Customer{ID: "cem", Name: "Cem Yılmaz", Email: "cem@mail.com", Active: true}

	aliHome := &domain.Address{ID: "ali-home", CustomerID: "ali", StreetLine: "Bağdat Cd. 12", Town: "Kadıköy", City: "İstanbul", Active: true}
	aliWork := &domain.Address{ID: "ali-work", CustomerID: "ali", StreetLine: "Atatürk Blv. 5", Town: "Çankaya", City: "Ankara", Active: true}
	ayseHome := &domain.Address{ID: "ayse-home", CustomerID: "ayse", StreetLine: "İstiklal Cd. 3", Town: "Beyoğlu", City: "İstanbul", Active: true}

	panel := &domain.Stock{ID: "panel", Name: "Panel", Active: true}
	vida := &domain.Stock{ID: "vida", Name: "Vida", Active: true}
	boya := &domain.Stock{ID: "boya", Name: "Boya", Active: true}

	orders := []domain.Order{
		{
			ID: "o1", OrderNo: "order001", CustomerID: "ali", OrderDate: day(3),
			TotalPrice: dec("205.00"), Tax: dec("41.00"),
			DeliveryAddressID: aliHome.ID, InvoiceAddressID: aliWork.ID, Active: true,
			Customer: ali, DeliveryAddress: aliHome, InvoiceAddress: aliWork,
			Lines: []domain.OrderLine{
				{ID: "l1", OrderID: "o1", StockID: "panel", Quantity: 2, UnitPrice: dec("100.00"), Active: true, Stock: panel},
				{ID: "l2", OrderID: "o1", StockID: "vida", Quantity: 1, UnitPrice: dec("5.00"), Active: true, Stock: vida},
			},
		},
		{
			ID: "o2", OrderNo: "order002", CustomerID: "ayse", OrderDate: day(2),
			TotalPrice: dec("236.50"), Tax: dec("47.30"),
			DeliveryAddressID: ayseHome.ID, InvoiceAddressID: ayseHome.ID, Active: true,
			Customer: ayse, DeliveryAddress: ayseHome, InvoiceAddress: ayseHome,
			Lines: []domain.OrderLine{
				{ID: "l3", OrderID: "o2", StockID: "panel", Quantity: 1, UnitPrice: dec("100.00"), Active: true, Stock: panel},
				{ID: "l4", OrderID: "o2", StockID: "boya", Quantity: 3, UnitPrice: dec("45.50"), Active: true, Stock: boya},
			},
		},
		{
			ID: "o3", OrderNo: "order003", CustomerID: "ali", OrderDate: day(4),
			TotalPrice: dec("500.00"), Tax: dec("100.00"),
			DeliveryAddressID: aliHome.ID, InvoiceAddressID: aliHome.ID, Active: false,
			Customer: ali, DeliveryAddress: aliHome, InvoiceAddress: aliHome,
			Lines: []domain.OrderLine{
				{ID: "l5", OrderID: "o3", StockID: "panel", Quantity: 5, UnitPrice: dec("100.00"), Active: true, Stock: panel},
			},
		},
		{
			ID: "o4", OrderNo: "order004", CustomerID: "cem", OrderDate: day(1),
			TotalPrice: dec("10.00"), Tax: dec("2.00"),
			DeliveryAddressID: ayseHome.ID, InvoiceAddressID: ayseHome.ID, Active: false,
			Customer: cem, DeliveryAddress: ayseHome, InvoiceAddress: ayseHome,
			Lines: []domain.OrderLine{
				{ID: "l6", OrderID: "o4", StockID: "vida", Quantity: 2, UnitPrice: dec("5.00"), Active: true, Stock: vida},
			},
		},
		{
			ID: "o5", OrderNo: "order005", CustomerID: "ali", OrderDate: day(5),
			TotalPrice: dec("50.00"), Tax: dec("10.00"),
			DeliveryAddressID: aliWork.ID, InvoiceAddressID: aliWork.ID, Active: true,
			Customer: ali, DeliveryAddress: aliWork, InvoiceAddress: aliWork,
			Lines: []domain.OrderLine{
				{ID: "l7", OrderID: "o5", StockID: "vida", Quantity: 4, UnitPrice: dec("5.00"), Active: false, Stock: vida},
				{ID: "l8", OrderID: "o5", StockID: "boya", Quantity: 1, UnitPrice: dec("45.50"), Active: true, Stock: boya},
			},
		},
	}
	return &stubGraphRepo{orders: orders}
}

func TestCustomerOrderSummaries(t *testing.T) {
	svc := New(fixtureGraph())
	got, err := svc.CustomerOrderSummaries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(got))
	}

	ali := got[0]
	if ali.CustomerName != "Ali Veli" {
		t.Fatalf("expected Ali first by grand total, got %q", ali.CustomerName)
	}
	if ali.OrderCount != 2 || ali.CancelledOrderCount != 1 {
		t.Fatalf("unexpected Ali counts: %d active, %d cancelled", ali.OrderCount, ali.CancelledOrderCount)
	}
	if !ali.GrandTotal.Equal(dec("255.00")) || !ali.TotalTax.Equal(dec("51.00")) || !ali.TotalAmount.Equal(dec("204.00")) {
		t.Fatalf("unexpected Ali amounts: %s/%s/%s", ali.TotalAmount, ali.TotalTax, ali.GrandTotal)
	}
	if !ali.LastOrderDate.Equal(day(5)) {
		t.Fatalf("expected last order date %v, got %v", day(5), ali.LastOrderDate)
	}

	if got[1].CustomerName != "Ayşe Kaya" || !got[1].GrandTotal.Equal(dec("236.50")) {
		t.Fatalf("unexpected second summary: %+v", got[1])
	}

	cem := got[2]
	if cem.CustomerName != "Cem Yılmaz" {
		t.Fatalf("expected cancelled-only customer last, got %q", cem.CustomerName)
	}
	if cem.OrderCount != 0 || cem.CancelledOrderCount != 1 {
		t.Fatalf("unexpected Cem counts: %d active, %d cancelled", cem.OrderCount, cem.CancelledOrderCount)
	}
	if !cem.GrandTotal.IsZero() || !cem.LastOrderDate.IsZero() {
		t.Fatalf("expected zero aggregates for cancelled-only customer, got %+v", cem)
	}
}

func TestProductCustomersReport(t *testing.T) {
	svc := New(fixtureGraph())
	got, err := svc.ProductCustomersReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// vida has one visible line and is below the threshold
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d: %+v", len(got), got)
	}
	for _, p := range got {
		if p.StockName == "Vida" {
			t.Fatalf("single-line product should be omitted")
		}
	}

	panel := got[0]
	if panel.StockName != "Panel" || panel.OrderLineCount != 2 {
		t.Fatalf("unexpected first product: %+v", panel)
	}
	if len(panel.Customers) != 2 {
		t.Fatalf("expected 2 customers for Panel, got %d", len(panel.Customers))
	}
	if panel.Customers[0].CustomerName != "Ali Veli" || panel.Customers[0].OrderLineCount != 1 {
		t.Fatalf("unexpected Panel customer: %+v", panel.Customers[0])
	}
	wantAddr := "Bağdat Cd. 12, Kadıköy, İstanbul"
	if len(panel.Customers[0].Addresses) != 1 || panel.Customers[0].Addresses[0] != wantAddr {
		t.Fatalf("unexpected addresses: %v", panel.Customers[0].Addresses)
	}
}

func TestMultiQuantityOrders(t *testing.T) {
	svc := New(fixtureGraph())
	got, err := svc.MultiQuantityOrders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// o3 is cancelled; o5's only multi-quantity line is inactive
	if len(got) != 2 {
		t.Fatalf("expected 2 orders, got %d: %+v", len(got), got)
	}
	if got[0].OrderNo != "order001" || got[1].OrderNo != "order002" {
		t.Fatalf("expected newest first, got %q then %q", got[0].OrderNo, got[1].OrderNo)
	}

	first := got[0]
	if len(first.Lines) != 1 || first.Lines[0].StockName != "Panel" {
		t.Fatalf("expected only the qualifying line, got %+v", first.Lines)
	}
	if !first.Lines[0].LineTotal.Equal(dec("200.00")) {
		t.Fatalf("unexpected line total %s", first.Lines[0].LineTotal)
	}
}

func TestDifferentAddressOrders(t *testing.T) {
	svc := New(fixtureGraph())
	got, err := svc.DifferentAddressOrders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].OrderNo != "order001" {
		t.Fatalf("expected only order001, got %+v", got)
	}
	if got[0].DeliveryAddress == got[0].InvoiceAddress {
		t.Fatalf("expected distinct formatted addresses, got %q", got[0].DeliveryAddress)
	}
}

func TestOrdersByCity(t *testing.T) {
	svc := New(fixtureGraph())
	got, err := svc.OrdersByCity(context.Background(), "İstanbul")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// o3 delivers to İstanbul but is cancelled; o5 delivers to Ankara
	if len(got) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(got))
	}
	if got[0].OrderNo != "order001" || got[1].OrderNo != "order002" {
		t.Fatalf("expected newest first, got %q then %q", got[0].OrderNo, got[1].OrderNo)
	}
}

func TestOrdersByCustomerName(t *testing.T) {
	svc := New(fixtureGraph())
	got, err := svc.OrdersByCustomerName(context.Background(), "Ali Veli")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 active orders for Ali, got %d", len(got))
	}
	if got[0].OrderNo != "order005" || got[1].OrderNo != "order001" {
		t.Fatalf("expected newest first, got %q then %q", got[0].OrderNo, got[1].OrderNo)
	}
}

func TestCustomerOrderDetailsIncludesCancelled(t *testing.T) {
	svc := New(fixtureGraph())
	got, err := svc.CustomerOrderDetails(context.Background(), "ali")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected full history of 3 orders, got %d", len(got))
	}
	if got[0].OrderNo != "order005" || got[1].OrderNo != "order003" || got[2].OrderNo != "order001" {
		t.Fatalf("unexpected order: %q %q %q", got[0].OrderNo, got[1].OrderNo, got[2].OrderNo)
	}
	if got[1].Active {
		t.Fatalf("expected cancelled order flagged inactive")
	}
	// o5's inactive line stays hidden even in the history view
	if len(got[0].Lines) != 1 || got[0].Lines[0].StockName != "Boya" {
		t.Fatalf("unexpected history lines: %+v", got[0].Lines)
	}
}
