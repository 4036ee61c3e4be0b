package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the negotiation lifecycle of an order.
type OrderStatus string

const (
	OrderStatusNegotiating OrderStatus = "NEGOTIATING"
	OrderStatusPending     OrderStatus = "PENDING"
	OrderStatusPaid        OrderStatus = "PAID"
	OrderStatusShipped     OrderStatus = "SHIPPED"
	OrderStatusDelivered   OrderStatus = "DELIVERED"
	OrderStatusCancelled   OrderStatus = "CANCELLED"
)

// Order is a buyer's purchase of one listing. StatusChangedAt is when the
// order entered its current status.
type Order struct {
	ID              int64
	AddressID       int64
	BuyerID         int64
	ListingID       int64
	SellerID        int64
	ListingName     string
	Quantity        int
	Price           decimal.Decimal
	Status          OrderStatus
	OrderedAt       time.Time
	StatusChangedAt time.Time
	PaidAt          *time.Time
	ShippedAt       *time.Time
	TrackingCode    *string
	Rating          *int
	RatingComment   *string
	RatedAt         *time.Time
	Shipping        ShippingAddress
}

// PartyOf reports the role userID plays in the order.
func (o *Order) PartyOf(userID int64) Party {
	var p Party
	if o.BuyerID == userID {
		p |= PartyBuyer
	}
	if o.SellerID == userID {
		p |= PartySeller
	}
	return p
}

// Rated reports whether the buyer already rated the order.
func (o *Order) Rated() bool {
	return o.Rating != nil
}

// ActionsFor lists the actions userID may take on the order right now.
func (o *Order) ActionsFor(userID int64) []OrderAction {
	party := o.PartyOf(userID)
	if party == 0 {
		return nil
	}
	var actions []OrderAction
	for _, a := range AvailableActions(o.Status, party) {
		if a == ActionRate && o.Rated() {
			continue
		}
		actions = append(actions, a)
	}
	return actions
}

// StatusChange carries the values written together with a status transition.
type StatusChange struct {
	OrderID      int64
	Action       OrderAction
	From         OrderStatus
	To           OrderStatus
	Price        decimal.Decimal
	TrackingCode *string
}
