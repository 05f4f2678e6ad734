// Package stores holds the marketplace state: catalog, carts, orders, sale
// notifications, ratings and users. Every store wraps a *gorm.DB handed in at
// startup; multi-table writes run inside a single transaction.
package stores

import (
	"time"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/shopspring/decimal"
)

const (
	DefaultFarmerName   = "Unknown Farmer"
	DefaultCustomerName = "A Customer"
	DefaultCurrency     = "USD"
	PlaceholderImageURL = "https://placehold.co/600x400.png"

	defaultPageLimit = 10
	maxPageLimit     = 100
)

// TaxRate is applied to the cart subtotal at checkout.
var TaxRate = decimal.RequireFromString("0.05")

// Actor is the authenticated caller of a store operation.
type Actor struct {
	ID   string
	Name string
	Role string
}

func (a Actor) IsFarmer() bool {
	return a.ID != "" && a.Role == models.RoleFarmer
}

type Page struct {
	Page  int
	Limit int
}

func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

func (p Page) offset() int {
	return (p.Page - 1) * p.Limit
}

func lineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func withTax(subtotal decimal.Decimal) float64 {
	return money(subtotal.Mul(decimal.NewFromInt(1).Add(TaxRate)))
}

func clock() time.Time {
	return time.Now().UTC()
}
