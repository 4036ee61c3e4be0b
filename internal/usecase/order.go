package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
	"github.com/comprae/marketplace/internal/domain/repository"
)

// EventPublisher delivers order events keyed by order id.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event model.OrderEvent) error
}

// TransitionRecorder counts applied and rejected order actions.
type TransitionRecorder interface {
	TransitionApplied(ctx context.Context, action model.OrderAction, from, to model.OrderStatus)
	TransitionRejected(ctx context.Context, action model.OrderAction, kind domainErrors.Kind)
}

// OrderUseCase drives orders through the status machine and keeps the stock
// ledger consistent with them.
type OrderUseCase struct {
	orders    repository.OrderRepository
	listings  repository.ListingRepository
	addresses repository.AddressRepository
	events    EventPublisher
	metrics   TransitionRecorder
	logger    *slog.Logger

	now     func() time.Time
	eventID func() string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	listings repository.ListingRepository,
	addresses repository.AddressRepository,
	events EventPublisher,
	metrics TransitionRecorder,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		listings:  listings,
		addresses: addresses,
		events:    events,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
		eventID:   uuid.NewString,
	}
}

// CreateOrder reserves one unit of the listing for the buyer and opens a
// negotiation with the seller.
func (u *OrderUseCase) CreateOrder(ctx context.Context, buyer model.Identity, listingID int64) (*model.Order, error) {
	order, err := u.createOrder(ctx, buyer, listingID)
	if err != nil {
		u.rejected(ctx, model.ActionCreate, err)
		return nil, err
	}
	u.applied(ctx, buyer.UserID, model.ActionCreate, "", order)
	return order, nil
}

func (u *OrderUseCase) createOrder(ctx context.Context, buyer model.Identity, listingID int64) (*model.Order, error) {
	listing, err := u.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID == buyer.UserID {
		return nil, fmt.Errorf("%w: cannot order your own listing", domainErrors.ErrForbidden)
	}
	if !listing.Available() {
		return nil, domainErrors.ErrUnavailable
	}

	address, err := u.addresses.GetForUser(ctx, buyer.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrMissingAddress
		}
		return nil, err
	}

	return u.orders.CreateReserving(ctx, model.Order{
		AddressID:   address.ID,
		BuyerID:     buyer.UserID,
		ListingID:   listing.ID,
		SellerID:    listing.SellerID,
		ListingName: listing.Name,
		Quantity:    1,
		Price:       decimal.Zero,
		Status:      model.InitialStatus,
		Shipping:    address.Snapshot(),
	})
}

// SetFinalPrice records the negotiated price and moves the order to PENDING.
func (u *OrderUseCase) SetFinalPrice(ctx context.Context, seller model.Identity, orderID int64, price decimal.Decimal) (*model.Order, error) {
	if err := ValidatePrice(price); err != nil {
		u.rejected(ctx, model.ActionSetPrice, err)
		return nil, err
	}
	return u.transition(ctx, seller, orderID, model.ActionSetPrice, func(order *model.Order, to model.OrderStatus) (*model.Order, error) {
		return u.orders.ApplyTransition(ctx, model.StatusChange{
			OrderID: order.ID, Action: model.ActionSetPrice, From: order.Status, To: to, Price: price,
		})
	})
}

func (u *OrderUseCase) PayOrder(ctx context.Context, buyer model.Identity, orderID int64) (*model.Order, error) {
	return u.simpleTransition(ctx, buyer, orderID, model.ActionPay)
}

// ShipOrder marks a paid order as shipped; an empty tracking code is allowed.
func (u *OrderUseCase) ShipOrder(ctx context.Context, seller model.Identity, orderID int64, trackingCode string) (*model.Order, error) {
	code, err := NormalizeTrackingCode(trackingCode)
	if err != nil {
		u.rejected(ctx, model.ActionShip, err)
		return nil, err
	}
	return u.transition(ctx, seller, orderID, model.ActionShip, func(order *model.Order, to model.OrderStatus) (*model.Order, error) {
		return u.orders.ApplyTransition(ctx, model.StatusChange{
			OrderID: order.ID, Action: model.ActionShip, From: order.Status, To: to, TrackingCode: code,
		})
	})
}

func (u *OrderUseCase) ConfirmDelivery(ctx context.Context, buyer model.Identity, orderID int64) (*model.Order, error) {
	return u.simpleTransition(ctx, buyer, orderID, model.ActionConfirmDelivery)
}

// CancelOrder cancels a not yet paid order on behalf of its buyer or seller
// and returns the reserved unit to stock.
func (u *OrderUseCase) CancelOrder(ctx context.Context, actor model.Identity, orderID int64) (*model.Order, error) {
	return u.transition(ctx, actor, orderID, model.ActionCancel, func(order *model.Order, _ model.OrderStatus) (*model.Order, error) {
		return u.orders.CancelRestoring(ctx, order.ID, order.Status)
	})
}

// RateOrder stores the buyer's single rating of a delivered order.
func (u *OrderUseCase) RateOrder(ctx context.Context, buyer model.Identity, orderID int64, rating int, comment string) (*model.Order, error) {
	comment = strings.TrimSpace(comment)
	if err := ValidateRating(rating, comment); err != nil {
		u.rejected(ctx, model.ActionRate, err)
		return nil, err
	}
	return u.transition(ctx, buyer, orderID, model.ActionRate, func(order *model.Order, _ model.OrderStatus) (*model.Order, error) {
		if order.Rated() {
			return nil, fmt.Errorf("%w: order already rated", domainErrors.ErrInvalidState)
		}
		return u.orders.Rate(ctx, order.ID, rating, comment)
	})
}

// GetOrder returns the order when the caller is its buyer or seller.
func (u *OrderUseCase) GetOrder(ctx context.Context, actor model.Identity, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PartyOf(actor.UserID) == 0 {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

func (u *OrderUseCase) ListBuyerOrders(ctx context.Context, buyer model.Identity) ([]model.Order, error) {
	return u.orders.ListByBuyer(ctx, buyer.UserID)
}

func (u *OrderUseCase) ListSellerOrders(ctx context.Context, seller model.Identity) ([]model.Order, error) {
	return u.orders.ListBySeller(ctx, seller.UserID)
}

// ExpiredReservations lists orders still holding stock whose status has not
// changed since cutoff.
func (u *OrderUseCase) ExpiredReservations(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	return u.orders.SelectExpiredReservations(ctx, cutoff, limit)
}

// ExpireOrder cancels an abandoned reservation without a user actor.
func (u *OrderUseCase) ExpireOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err == nil && !order.Status.Cancellable() {
		err = domainErrors.ErrInvalidState
	}
	if err != nil {
		u.rejected(ctx, model.ActionCancel, err)
		return nil, err
	}

	from := order.Status
	updated, err := u.orders.CancelRestoring(ctx, order.ID, from)
	if err != nil {
		u.rejected(ctx, model.ActionCancel, err)
		return nil, err
	}
	u.applied(ctx, 0, model.ActionCancel, from, updated)
	return updated, nil
}

type applyFunc func(order *model.Order, to model.OrderStatus) (*model.Order, error)

func (u *OrderUseCase) simpleTransition(ctx context.Context, actor model.Identity, orderID int64, action model.OrderAction) (*model.Order, error) {
	return u.transition(ctx, actor, orderID, action, func(order *model.Order, to model.OrderStatus) (*model.Order, error) {
		return u.orders.ApplyTransition(ctx, model.StatusChange{
			OrderID: order.ID, Action: action, From: order.Status, To: to,
		})
	})
}

// transition checks existence, then the caller's party, then the current
// status before handing the conditional update to apply.
func (u *OrderUseCase) transition(ctx context.Context, actor model.Identity, orderID int64, action model.OrderAction, apply applyFunc) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		u.rejected(ctx, action, err)
		return nil, err
	}

	if !action.PermittedFor(order.PartyOf(actor.UserID)) {
		u.rejected(ctx, action, domainErrors.ErrForbidden)
		return nil, domainErrors.ErrForbidden
	}

	to, ok := order.Status.Next(action)
	if !ok {
		u.rejected(ctx, action, domainErrors.ErrInvalidState)
		return nil, domainErrors.ErrInvalidState
	}

	from := order.Status
	updated, err := apply(order, to)
	if err != nil {
		u.rejected(ctx, action, err)
		return nil, err
	}
	u.applied(ctx, actor.UserID, action, from, updated)
	return updated, nil
}

func (u *OrderUseCase) applied(ctx context.Context, actorID int64, action model.OrderAction, from model.OrderStatus, order *model.Order) {
	u.logger.InfoContext(ctx, "order transition",
		slog.Int64("order_id", order.ID),
		slog.String("action", string(action)),
		slog.String("from", string(from)),
		slog.String("to", string(order.Status)),
		slog.Int64("actor_id", actorID),
	)
	u.metrics.TransitionApplied(ctx, action, from, order.Status)

	event := model.OrderEvent{
		EventID:    u.eventID(),
		OrderID:    order.ID,
		ListingID:  order.ListingID,
		BuyerID:    order.BuyerID,
		SellerID:   order.SellerID,
		Action:     action,
		From:       from,
		To:         order.Status,
		ActorID:    actorID,
		Price:      order.Price.StringFixed(2),
		OccurredAt: u.now().UTC(),
	}
	if err := u.events.Publish(ctx, fmt.Sprint(order.ID), event); err != nil {
		u.logger.ErrorContext(ctx, "publish order event",
			slog.Int64("order_id", order.ID),
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
	}
}

func (u *OrderUseCase) rejected(ctx context.Context, action model.OrderAction, err error) {
	kind := domainErrors.KindOf(err)
	if kind == domainErrors.KindInternal {
		u.logger.ErrorContext(ctx, "order action failed",
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
	}
	u.metrics.TransitionRejected(ctx, action, kind)
}
