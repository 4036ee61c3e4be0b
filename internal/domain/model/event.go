package model

import "time"

// OrderEvent is published after every successful order transition.
type OrderEvent struct {
	EventID    string      `json:"event_id"`
	OrderID    int64       `json:"order_id"`
	ListingID  int64       `json:"listing_id"`
	BuyerID    int64       `json:"buyer_id"`
	SellerID   int64       `json:"seller_id"`
	Action     OrderAction `json:"action"`
	From       OrderStatus `json:"from,omitempty"`
	To         OrderStatus `json:"to"`
	ActorID    int64       `json:"actor_id"`
	Price      string      `json:"price"`
	OccurredAt time.Time   `json:"occurred_at"`
}
