package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/comprae/marketplace/internal/domain/model"
)

// AuthFacadeStub implements the HTTP auth facade.
type AuthFacadeStub struct {
	RegisterFn     func(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error)
	AuthenticateFn func(ctx context.Context, email, password string) (*model.User, string, error)
	ParseFn        func(token string) (model.Identity, error)
}

func (s AuthFacadeStub) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, password, role)
	}
	if role == "" {
		role = model.RoleCustomer
	}
	return &model.User{ID: 1, Name: name, Email: email, Role: role}, "token", nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleCustomer}, "token", nil
}

func (s AuthFacadeStub) ParseToken(token string) (model.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Identity{UserID: 1, Role: model.RoleCustomer}, nil
}

// ListingFacadeStub implements the HTTP listing facade.
type ListingFacadeStub struct {
	CreateFn func(ctx context.Context, seller model.Identity, in model.Listing) (*model.Listing, error)
	UpdateFn func(ctx context.Context, seller model.Identity, id int64, in model.Listing) (*model.Listing, error)
	GetFn    func(ctx context.Context, id int64) (*model.Listing, error)
	SearchFn func(ctx context.Context, filter model.ListingFilter) ([]model.Listing, error)
	MineFn   func(ctx context.Context, seller model.Identity) ([]model.Listing, error)
}

func (s ListingFacadeStub) CreateListing(ctx context.Context, seller model.Identity, in model.Listing) (*model.Listing, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, seller, in)
	}
	in.ID = 1
	in.SellerID = seller.UserID
	return &in, nil
}

func (s ListingFacadeStub) UpdateListing(ctx context.Context, seller model.Identity, id int64, in model.Listing) (*model.Listing, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, seller, id, in)
	}
	in.ID = id
	in.SellerID = seller.UserID
	return &in, nil
}

func (s ListingFacadeStub) GetListing(ctx context.Context, id int64) (*model.Listing, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Listing{ID: id, Active: true, Stock: 1}, nil
}

func (s ListingFacadeStub) SearchListings(ctx context.Context, filter model.ListingFilter) ([]model.Listing, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, filter)
	}
	return nil, nil
}

func (s ListingFacadeStub) ListSellerListings(ctx context.Context, seller model.Identity) ([]model.Listing, error) {
	if s.MineFn != nil {
		return s.MineFn(ctx, seller)
	}
	return nil, nil
}

// AddressFacadeStub implements the HTTP address facade.
type AddressFacadeStub struct {
	AddFn  func(ctx context.Context, user model.Identity, in model.Address) (*model.Address, error)
	ListFn func(ctx context.Context, user model.Identity) ([]model.Address, error)
}

func (s AddressFacadeStub) AddAddress(ctx context.Context, user model.Identity, in model.Address) (*model.Address, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, user, in)
	}
	in.ID = 1
	in.UserID = user.UserID
	return &in, nil
}

func (s AddressFacadeStub) ListAddresses(ctx context.Context, user model.Identity) ([]model.Address, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, user)
	}
	return nil, nil
}

// OrderCallFn is the shape shared by single-order operations.
type OrderCallFn func(ctx context.Context, actor model.Identity, orderID int64) (*model.Order, error)

// OrderFacadeStub implements the HTTP order facade. Unset operations
// return a negotiating order bought by the caller.
type OrderFacadeStub struct {
	CreateFn   func(ctx context.Context, buyer model.Identity, listingID int64) (*model.Order, error)
	GetFn      OrderCallFn
	BuyerFn    func(ctx context.Context, buyer model.Identity) ([]model.Order, error)
	SellerFn   func(ctx context.Context, seller model.Identity) ([]model.Order, error)
	SetPriceFn func(ctx context.Context, seller model.Identity, orderID int64, price decimal.Decimal) (*model.Order, error)
	PayFn      OrderCallFn
	ShipFn     func(ctx context.Context, seller model.Identity, orderID int64, trackingCode string) (*model.Order, error)
	ConfirmFn  OrderCallFn
	CancelFn   OrderCallFn
	RateFn     func(ctx context.Context, buyer model.Identity, orderID int64, rating int, comment string) (*model.Order, error)
}

func defaultOrder(actor model.Identity, orderID int64) *model.Order {
	return &model.Order{ID: orderID, BuyerID: actor.UserID, Quantity: 1, Status: model.InitialStatus}
}

func callOrder(ctx context.Context, fn OrderCallFn, actor model.Identity, orderID int64) (*model.Order, error) {
	if fn != nil {
		return fn(ctx, actor, orderID)
	}
	return defaultOrder(actor, orderID), nil
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, buyer model.Identity, listingID int64) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, buyer, listingID)
	}
	order := defaultOrder(buyer, 1)
	order.ListingID = listingID
	return order, nil
}

func (s OrderFacadeStub) GetOrder(ctx context.Context, actor model.Identity, orderID int64) (*model.Order, error) {
	return callOrder(ctx, s.GetFn, actor, orderID)
}

func (s OrderFacadeStub) ListBuyerOrders(ctx context.Context, buyer model.Identity) ([]model.Order, error) {
	if s.BuyerFn != nil {
		return s.BuyerFn(ctx, buyer)
	}
	return nil, nil
}

func (s OrderFacadeStub) ListSellerOrders(ctx context.Context, seller model.Identity) ([]model.Order, error) {
	if s.SellerFn != nil {
		return s.SellerFn(ctx, seller)
	}
	return nil, nil
}

func (s OrderFacadeStub) SetFinalPrice(ctx context.Context, seller model.Identity, orderID int64, price decimal.Decimal) (*model.Order, error) {
	if s.SetPriceFn != nil {
		return s.SetPriceFn(ctx, seller, orderID, price)
	}
	return &model.Order{ID: orderID, SellerID: seller.UserID, Price: price, Quantity: 1, Status: model.OrderStatusPending}, nil
}

func (s OrderFacadeStub) PayOrder(ctx context.Context, buyer model.Identity, orderID int64) (*model.Order, error) {
	return callOrder(ctx, s.PayFn, buyer, orderID)
}

func (s OrderFacadeStub) ShipOrder(ctx context.Context, seller model.Identity, orderID int64, trackingCode string) (*model.Order, error) {
	if s.ShipFn != nil {
		return s.ShipFn(ctx, seller, orderID, trackingCode)
	}
	return &model.Order{ID: orderID, SellerID: seller.UserID, Quantity: 1, Status: model.OrderStatusShipped}, nil
}

func (s OrderFacadeStub) ConfirmDelivery(ctx context.Context, buyer model.Identity, orderID int64) (*model.Order, error) {
	return callOrder(ctx, s.ConfirmFn, buyer, orderID)
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, actor model.Identity, orderID int64) (*model.Order, error) {
	return callOrder(ctx, s.CancelFn, actor, orderID)
}

func (s OrderFacadeStub) RateOrder(ctx context.Context, buyer model.Identity, orderID int64, rating int, comment string) (*model.Order, error) {
	if s.RateFn != nil {
		return s.RateFn(ctx, buyer, orderID, rating, comment)
	}
	return &model.Order{ID: orderID, BuyerID: buyer.UserID, Quantity: 1, Status: model.OrderStatusDelivered, Rating: &rating}, nil
}

// MarketplaceFacadeStub aggregates every facade stub.
type MarketplaceFacadeStub struct {
	AuthFacadeStub
	ListingFacadeStub
	AddressFacadeStub
	OrderFacadeStub
}

// HealthCheckerStub reports a fixed storage health.
type HealthCheckerStub struct {
	Err error
}

func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}
