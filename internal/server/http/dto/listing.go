package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingRequest is the body of listing create and update calls.
type ListingRequest struct {
	CategoryID  int64           `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Weight      float64         `json:"weight" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      *bool           `json:"active"`
}

// ListingQuery holds public search parameters.
type ListingQuery struct {
	Q        string `form:"q"`
	Category *int64 `form:"category"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
}

type ListingResponse struct {
	ID          int64     `json:"id"`
	SellerID    int64     `json:"seller_id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Weight      float64   `json:"weight"`
	Price       string    `json:"price"`
	Stock       int       `json:"stock"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
