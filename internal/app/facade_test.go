package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
	"github.com/comprae/marketplace/internal/server/http/handlers"
	testhelpers "github.com/comprae/marketplace/internal/test"
	"github.com/comprae/marketplace/internal/usecase"
)

func newOrderUseCase(store *testhelpers.MarketStore) *usecase.OrderUseCase {
	return usecase.NewOrderUseCase(
		store.Orders(),
		store.Listings(),
		store.Addresses(),
		&testhelpers.PublisherStub{},
		&testhelpers.TransitionRecorderStub{},
		discardLogger(),
	)
}

func newFacade() (*MarketplaceFacade, *testhelpers.UserRepositoryStub, *testhelpers.MarketStore) {
	users := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{
		IssueFn: func(identity model.Identity) (string, error) {
			return string(identity.Role), nil
		},
		ParseFn: func(token string) (model.Identity, error) {
			return model.Identity{UserID: 99, Role: model.Role(token)}, nil
		},
	}
	store := testhelpers.NewMarketStore()
	facade := NewMarketplaceFacade(
		usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, strategy),
		usecase.NewListingUseCase(store.Listings()),
		usecase.NewAddressUseCase(store.Addresses()),
		newOrderUseCase(store),
	)
	return facade, users, store
}

func TestMarketplaceFacadeAuth(t *testing.T) {
	facade, users, _ := newFacade()
	ctx := context.Background()

	user, token, err := facade.Register(ctx, "Loja Azul", "Loja@Example.com", "secret1", model.RoleSeller)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != string(model.RoleSeller) || user.Email != "loja@example.com" {
		t.Fatalf("unexpected registration result %+v %q", user, token)
	}
	if _, err := users.GetByEmail(ctx, "loja@example.com"); err != nil {
		t.Fatalf("user not stored: %v", err)
	}

	if _, _, err := facade.Authenticate(ctx, "loja@example.com", "secret1"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if _, _, err := facade.Authenticate(ctx, "loja@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	identity, err := facade.ParseToken("SELLER")
	if err != nil || identity.UserID != 99 || identity.Role != model.RoleSeller {
		t.Fatalf("unexpected identity %+v, %v", identity, err)
	}
}

func TestMarketplaceFacadeOrderFlow(t *testing.T) {
	facade, _, store := newFacade()
	ctx := context.Background()
	seller := model.Identity{UserID: 10, Role: model.RoleSeller}
	buyer := model.Identity{UserID: 20, Role: model.RoleCustomer}

	listing, err := facade.CreateListing(ctx, seller, model.Listing{
		CategoryID: 1, Name: "Bicicleta aro 29", Weight: 14, Price: decimal.NewFromInt(1800), Stock: 1,
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	if _, err := facade.UpdateListing(ctx, seller, listing.ID, model.Listing{
		CategoryID: 1, Name: "Bicicleta aro 29", Weight: 14, Price: decimal.NewFromInt(1750), Stock: 1, Active: true,
	}); err != nil {
		t.Fatalf("update listing: %v", err)
	}
	if found, err := facade.SearchListings(ctx, model.ListingFilter{Query: "bicicleta"}); err != nil || len(found) != 1 {
		t.Fatalf("search: %v %v", found, err)
	}
	if mine, err := facade.ListSellerListings(ctx, seller); err != nil || len(mine) != 1 {
		t.Fatalf("seller listings: %v %v", mine, err)
	}

	if _, err := facade.CreateOrder(ctx, buyer, listing.ID); !errors.Is(err, domainErrors.ErrMissingAddress) {
		t.Fatalf("expected missing address, got %v", err)
	}
	if _, err := facade.AddAddress(ctx, buyer, model.Address{
		Title: "Casa", Street: "Rua B", Number: "22", Neighborhood: "Centro",
		City: "Natal", State: "RN", PostalCode: "59000-000",
	}); err != nil {
		t.Fatalf("add address: %v", err)
	}
	if addresses, err := facade.ListAddresses(ctx, buyer); err != nil || len(addresses) != 1 {
		t.Fatalf("list addresses: %v %v", addresses, err)
	}

	order, err := facade.CreateOrder(ctx, buyer, listing.ID)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if current, _ := facade.GetListing(ctx, listing.ID); current.Stock != 0 {
		t.Fatalf("expected stock reserved, got %d", current.Stock)
	}

	steps := []func() (*model.Order, error){
		func() (*model.Order, error) {
			return facade.SetFinalPrice(ctx, seller, order.ID, decimal.NewFromInt(1700))
		},
		func() (*model.Order, error) { return facade.PayOrder(ctx, buyer, order.ID) },
		func() (*model.Order, error) { return facade.ShipOrder(ctx, seller, order.ID, "BR999") },
		func() (*model.Order, error) { return facade.ConfirmDelivery(ctx, buyer, order.ID) },
		func() (*model.Order, error) {
			return facade.RateOrder(ctx, buyer, order.ID, 5, "entrega perfeita e rapida")
		},
	}
	for i, step := range steps {
		if _, err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	got, err := facade.GetOrder(ctx, seller, order.ID)
	if err != nil || got.Status != model.OrderStatusDelivered || got.Rating == nil {
		t.Fatalf("unexpected final order %+v, %v", got, err)
	}
	if _, err := facade.CancelOrder(ctx, buyer, order.ID); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected invalid state for cancel after delivery, got %v", err)
	}

	bought, _ := facade.ListBuyerOrders(ctx, buyer)
	sold, _ := facade.ListSellerOrders(ctx, seller)
	if len(bought) != 1 || len(sold) != 1 {
		t.Fatalf("expected one order on each side, got %d and %d", len(bought), len(sold))
	}
	if stored, _ := store.Listing(listing.ID); stored.Stock != 0 {
		t.Fatalf("delivered order must keep stock consumed, got %d", stored.Stock)
	}
}

var _ handlers.MarketplaceFacade = (*MarketplaceFacade)(nil)
