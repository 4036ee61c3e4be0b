package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing is a product offered by a seller. Stock is never negative.
type Listing struct {
	ID          int64
	SellerID    int64
	CategoryID  int64
	Name        string
	Description string
	Weight      float64
	Price       decimal.Decimal
	Stock       int
	Active      bool
	CreatedAt   time.Time
}

// Available reports whether the listing can receive a new order.
func (l *Listing) Available() bool {
	return l.Active && l.Stock > 0
}

// ListingFilter narrows public listing searches. Zero values are ignored.
type ListingFilter struct {
	Query      string
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}
