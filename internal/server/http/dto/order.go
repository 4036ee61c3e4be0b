package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	ListingID int64 `json:"listing_id" binding:"required"`
}

type PriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type ShipRequest struct {
	TrackingCode string `json:"tracking_code"`
}

type RatingRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ShippingResponse is the address snapshot taken when the order was placed.
type ShippingResponse struct {
	Street       string  `json:"street"`
	Number       string  `json:"number"`
	Complement   *string `json:"complement,omitempty"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postal_code"`
}

// OrderResponse describes an order together with the caller's next actions.
type OrderResponse struct {
	ID            int64            `json:"id"`
	ListingID     int64            `json:"listing_id"`
	ListingName   string           `json:"listing_name"`
	BuyerID       int64            `json:"buyer_id"`
	SellerID      int64            `json:"seller_id"`
	Quantity      int              `json:"quantity"`
	Price         string           `json:"price"`
	Status        string           `json:"status"`
	OrderedAt     time.Time        `json:"ordered_at"`
	PaidAt        *time.Time       `json:"paid_at,omitempty"`
	ShippedAt     *time.Time       `json:"shipped_at,omitempty"`
	TrackingCode  *string          `json:"tracking_code,omitempty"`
	Rating        *int             `json:"rating,omitempty"`
	RatingComment *string          `json:"rating_comment,omitempty"`
	RatedAt       *time.Time       `json:"rated_at,omitempty"`
	Shipping      ShippingResponse `json:"shipping"`
	Actions       []string         `json:"actions"`
}

// ErrorBody is the envelope of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
