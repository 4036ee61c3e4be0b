package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/comprae/marketplace/internal/domain/model"
	"github.com/comprae/marketplace/internal/usecase"
)

// MarketplaceFacade exposes the use cases to the transport layer.
type MarketplaceFacade struct {
	auth      *usecase.AuthUseCase
	listings  *usecase.ListingUseCase
	addresses *usecase.AddressUseCase
	orders    *usecase.OrderUseCase
}

func NewMarketplaceFacade(auth *usecase.AuthUseCase, listings *usecase.ListingUseCase, addresses *usecase.AddressUseCase, orders *usecase.OrderUseCase) *MarketplaceFacade {
	return &MarketplaceFacade{auth: auth, listings: listings, addresses: addresses, orders: orders}
}

func (f *MarketplaceFacade) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error) {
	return f.auth.Register(ctx, usecase.Registration{Name: name, Email: email, Password: password, Role: role})
}

func (f *MarketplaceFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *MarketplaceFacade) ParseToken(token string) (model.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketplaceFacade) CreateListing(ctx context.Context, seller model.Identity, in model.Listing) (*model.Listing, error) {
	return f.listings.CreateListing(ctx, seller, in)
}

func (f *MarketplaceFacade) UpdateListing(ctx context.Context, seller model.Identity, id int64, in model.Listing) (*model.Listing, error) {
	return f.listings.UpdateListing(ctx, seller, id, in)
}

func (f *MarketplaceFacade) GetListing(ctx context.Context, id int64) (*model.Listing, error) {
	return f.listings.GetListing(ctx, id)
}

func (f *MarketplaceFacade) SearchListings(ctx context.Context, filter model.ListingFilter) ([]model.Listing, error) {
	return f.listings.SearchListings(ctx, filter)
}

func (f *MarketplaceFacade) ListSellerListings(ctx context.Context, seller model.Identity) ([]model.Listing, error) {
	return f.listings.ListSellerListings(ctx, seller)
}

func (f *MarketplaceFacade) AddAddress(ctx context.Context, user model.Identity, in model.Address) (*model.Address, error) {
	return f.addresses.AddAddress(ctx, user, in)
}

func (f *MarketplaceFacade) ListAddresses(ctx context.Context, user model.Identity) ([]model.Address, error) {
	return f.addresses.ListAddresses(ctx, user)
}

func (f *MarketplaceFacade) CreateOrder(ctx context.Context, buyer model.Identity, listingID int64) (*model.Order, error) {
	return f.orders.CreateOrder(ctx, buyer, listingID)
}

func (f *MarketplaceFacade) GetOrder(ctx context.Context, actor model.Identity, orderID int64) (*model.Order, error) {
	return f.orders.GetOrder(ctx, actor, orderID)
}

func (f *MarketplaceFacade) ListBuyerOrders(ctx context.Context, buyer model.Identity) ([]model.Order, error) {
	return f.orders.ListBuyerOrders(ctx, buyer)
}

func (f *MarketplaceFacade) ListSellerOrders(ctx context.Context, seller model.Identity) ([]model.Order, error) {
	return f.orders.ListSellerOrders(ctx, seller)
}

func (f *MarketplaceFacade) SetFinalPrice(ctx context.Context, seller model.Identity, orderID int64, price decimal.Decimal) (*model.Order, error) {
	return f.orders.SetFinalPrice(ctx, seller, orderID, price)
}

func (f *MarketplaceFacade) PayOrder(ctx context.Context, buyer model.Identity, orderID int64) (*model.Order, error) {
	return f.orders.PayOrder(ctx, buyer, orderID)
}

func (f *MarketplaceFacade) ShipOrder(ctx context.Context, seller model.Identity, orderID int64, trackingCode string) (*model.Order, error) {
	return f.orders.ShipOrder(ctx, seller, orderID, trackingCode)
}

func (f *MarketplaceFacade) ConfirmDelivery(ctx context.Context, buyer model.Identity, orderID int64) (*model.Order, error) {
	return f.orders.ConfirmDelivery(ctx, buyer, orderID)
}

func (f *MarketplaceFacade) CancelOrder(ctx context.Context, actor model.Identity, orderID int64) (*model.Order, error) {
	return f.orders.CancelOrder(ctx, actor, orderID)
}

func (f *MarketplaceFacade) RateOrder(ctx context.Context, buyer model.Identity, orderID int64, rating int, comment string) (*model.Order, error) {
	return f.orders.RateOrder(ctx, buyer, orderID, rating, comment)
}
