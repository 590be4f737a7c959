package domain

import "fmt"

// Address is a customer-owned delivery or invoice address.
type Address struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	Type       string `json:"type"`
	Country    string `json:"country"`
	City       string `json:"city"`
	Town       string `json:"town"`
	StreetLine string `json:"streetLine"`
	PostalCode string `json:"postalCode"`
	Active     bool   `json:"active"`
}

func (a Address) Visible() bool { return a.Active }

// Format renders the single-line address string used by every report.
func (a Address) Format() string {
	return fmt.Sprintf("%s, %s, %s", a.StreetLine, a.Town, a.City)
}
