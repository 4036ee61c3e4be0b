package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/comprae/marketplace/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (model.Identity, error)
}

// ListingFacade exposes the listing catalogue.
type ListingFacade interface {
	CreateListing(ctx context.Context, seller model.Identity, in model.Listing) (*model.Listing, error)
	UpdateListing(ctx context.Context, seller model.Identity, id int64, in model.Listing) (*model.Listing, error)
	GetListing(ctx context.Context, id int64) (*model.Listing, error)
	SearchListings(ctx context.Context, filter model.ListingFilter) ([]model.Listing, error)
	ListSellerListings(ctx context.Context, seller model.Identity) ([]model.Listing, error)
}

type AddressFacade interface {
	AddAddress(ctx context.Context, user model.Identity, in model.Address) (*model.Address, error)
	ListAddresses(ctx context.Context, user model.Identity) ([]model.Address, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, buyer model.Identity, listingID int64) (*model.Order, error)
	GetOrder(ctx context.Context, actor model.Identity, orderID int64) (*model.Order, error)
	ListBuyerOrders(ctx context.Context, buyer model.Identity) ([]model.Order, error)
	ListSellerOrders(ctx context.Context, seller model.Identity) ([]model.Order, error)
	SetFinalPrice(ctx context.Context, seller model.Identity, orderID int64, price decimal.Decimal) (*model.Order, error)
	PayOrder(ctx context.Context, buyer model.Identity, orderID int64) (*model.Order, error)
	ShipOrder(ctx context.Context, seller model.Identity, orderID int64, trackingCode string) (*model.Order, error)
	ConfirmDelivery(ctx context.Context, buyer model.Identity, orderID int64) (*model.Order, error)
	CancelOrder(ctx context.Context, actor model.Identity, orderID int64) (*model.Order, error)
	RateOrder(ctx context.Context, buyer model.Identity, orderID int64, rating int, comment string) (*model.Order, error)
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	ListingFacade
	AddressFacade
	OrderFacade
}

// HealthChecker reports whether backing storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
