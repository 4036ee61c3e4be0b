package repository

import (
	"context"
	"time"

	"github.com/comprae/marketplace/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// Every status change is conditioned on the expected current status and
// returns ErrInvalidState when the order moved in the meantime.
type OrderRepository interface {
	// CreateReserving decrements listing stock and inserts the order atomically.
	CreateReserving(ctx context.Context, order model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.Order, error)
	ApplyTransition(ctx context.Context, change model.StatusChange) (*model.Order, error)
	// CancelRestoring cancels the order and gives its reserved quantity back to the listing.
	CancelRestoring(ctx context.Context, orderID int64, from model.OrderStatus) (*model.Order, error)
	Rate(ctx context.Context, orderID int64, rating int, comment string) (*model.Order, error)
	SelectExpiredReservations(ctx context.Context, changedBefore time.Time, limit int) ([]model.Order, error)
}
