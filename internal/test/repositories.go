package test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
	"github.com/comprae/marketplace/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu      sync.Mutex
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(_ context.Context, user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ByEmail == nil {
		s.ByEmail = make(map[string]*model.User)
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.ByEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	user.CreatedAt = time.Unix(0, 0).UTC()
	s.Next++
	stored := user
	s.ByEmail[user.Email] = &stored
	s.ByID[user.ID] = &stored
	return &user, nil
}

func (s *UserRepositoryStub) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		u := *user
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		u := *user
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MarketStore keeps listings, addresses and orders behind one mutex so the
// stock ledger behaves like the conditional SQL updates.
type MarketStore struct {
	mu        sync.Mutex
	listings  map[int64]model.Listing
	addresses map[int64]model.Address
	orders    map[int64]model.Order
	seq       int64

	// Now stamps created and transitioned orders.
	Now func() time.Time
	// Err, when set, is returned by every repository call.
	Err error
}

func NewMarketStore() *MarketStore {
	return &MarketStore{
		listings:  make(map[int64]model.Listing),
		addresses: make(map[int64]model.Address),
		orders:    make(map[int64]model.Order),
		Now:       func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func (s *MarketStore) Listings() *ListingStore  { return &ListingStore{s} }
func (s *MarketStore) Addresses() *AddressStore { return &AddressStore{s} }
func (s *MarketStore) Orders() *OrderStore      { return &OrderStore{s} }

func (s *MarketStore) nextID() int64 {
	s.seq++
	return s.seq
}

// PutListing stores l, assigning an id when it has none.
func (s *MarketStore) PutListing(l model.Listing) model.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == 0 {
		l.ID = s.nextID()
	}
	s.listings[l.ID] = l
	return l
}

func (s *MarketStore) PutAddress(a model.Address) model.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.nextID()
	}
	s.addresses[a.ID] = a
	return a
}

func (s *MarketStore) PutOrder(o model.Order) model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == 0 {
		o.ID = s.nextID()
	}
	if o.Quantity == 0 {
		o.Quantity = 1
	}
	if o.StatusChangedAt.IsZero() {
		o.StatusChangedAt = o.OrderedAt
	}
	s.orders[o.ID] = o
	return s.joined(o)
}

// Listing returns the stored listing by id.
func (s *MarketStore) Listing(id int64) (model.Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[id]
	return l, ok
}

// Order returns the stored order by id with listing fields resolved.
func (s *MarketStore) Order(id int64) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, false
	}
	return s.joined(o), true
}

func (s *MarketStore) joined(o model.Order) model.Order {
	if l, ok := s.listings[o.ListingID]; ok {
		o.SellerID = l.SellerID
		o.ListingName = l.Name
	}
	return o
}

func (s *MarketStore) decrement(listingID int64, quantity int) error {
	l, ok := s.listings[listingID]
	if !ok || !l.Active || l.Stock < quantity {
		return domainErrors.ErrUnavailable
	}
	l.Stock -= quantity
	s.listings[listingID] = l
	return nil
}

func (s *MarketStore) restore(listingID int64, quantity int) error {
	l, ok := s.listings[listingID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	l.Stock += quantity
	s.listings[listingID] = l
	return nil
}

// ListingStore is the listing repository view of MarketStore.
type ListingStore struct{ s *MarketStore }

func (r *ListingStore) Create(_ context.Context, listing model.Listing) (*model.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	listing.ID = r.s.nextID()
	listing.CreatedAt = r.s.Now()
	r.s.listings[listing.ID] = listing
	return &listing, nil
}

func (r *ListingStore) Update(_ context.Context, listing model.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	current, ok := r.s.listings[listing.ID]
	if !ok || current.SellerID != listing.SellerID {
		return domainErrors.ErrNotFound
	}
	listing.CreatedAt = current.CreatedAt
	r.s.listings[listing.ID] = listing
	return nil
}

func (r *ListingStore) GetByID(_ context.Context, id int64) (*model.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	l, ok := r.s.listings[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &l, nil
}

func (r *ListingStore) Search(_ context.Context, filter model.ListingFilter) ([]model.Listing, error) {
	return r.collect(func(l model.Listing) bool {
		if !l.Available() {
			return false
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(filter.Query)) {
			return false
		}
		if filter.CategoryID != nil && l.CategoryID != *filter.CategoryID {
			return false
		}
		if filter.MinPrice != nil && l.Price.LessThan(*filter.MinPrice) {
			return false
		}
		if filter.MaxPrice != nil && l.Price.GreaterThan(*filter.MaxPrice) {
			return false
		}
		return true
	})
}

func (r *ListingStore) ListBySeller(_ context.Context, sellerID int64) ([]model.Listing, error) {
	return r.collect(func(l model.Listing) bool { return l.SellerID == sellerID })
}

func (r *ListingStore) collect(keep func(model.Listing) bool) ([]model.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []model.Listing
	for _, l := range r.s.listings {
		if keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *ListingStore) DecrementStock(_ context.Context, listingID int64, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	return r.s.decrement(listingID, quantity)
}

func (r *ListingStore) RestoreStock(_ context.Context, listingID int64, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	return r.s.restore(listingID, quantity)
}

// AddressStore is the address repository view of MarketStore.
type AddressStore struct{ s *MarketStore }

func (r *AddressStore) Create(_ context.Context, address model.Address) (*model.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	address.ID = r.s.nextID()
	r.s.addresses[address.ID] = address
	return &address, nil
}

func (r *AddressStore) ListByUser(_ context.Context, userID int64) ([]model.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []model.Address
	for _, a := range r.s.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *AddressStore) GetForUser(ctx context.Context, userID int64) (*model.Address, error) {
	list, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &list[0], nil
}

// OrderStore is the order repository view of MarketStore.
type OrderStore struct{ s *MarketStore }

func (r *OrderStore) CreateReserving(_ context.Context, order model.Order) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if order.Quantity <= 0 {
		order.Quantity = 1
	}
	if err := r.s.decrement(order.ListingID, order.Quantity); err != nil {
		return nil, err
	}
	order.ID = r.s.nextID()
	order.OrderedAt = r.s.Now()
	order.StatusChangedAt = order.OrderedAt
	r.s.orders[order.ID] = order
	created := r.s.joined(order)
	return &created, nil
}

func (r *OrderStore) GetByID(_ context.Context, id int64) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	joined := r.s.joined(o)
	return &joined, nil
}

func (r *OrderStore) ListByBuyer(_ context.Context, buyerID int64) ([]model.Order, error) {
	return r.collect(func(o model.Order) bool { return o.BuyerID == buyerID }, 0)
}

func (r *OrderStore) ListBySeller(_ context.Context, sellerID int64) ([]model.Order, error) {
	return r.collect(func(o model.Order) bool { return o.SellerID == sellerID }, 0)
}

func (r *OrderStore) SelectExpiredReservations(_ context.Context, changedBefore time.Time, limit int) ([]model.Order, error) {
	return r.collect(func(o model.Order) bool {
		return o.Status.Cancellable() && o.StatusChangedAt.Before(changedBefore)
	}, limit)
}

func (r *OrderStore) collect(keep func(model.Order) bool, limit int) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []model.Order
	for _, o := range r.s.orders {
		o = r.s.joined(o)
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OrderedAt.Equal(out[j].OrderedAt) {
			return out[i].OrderedAt.After(out[j].OrderedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *OrderStore) ApplyTransition(ctx context.Context, change model.StatusChange) (*model.Order, error) {
	if to, ok := change.From.Next(change.Action); !ok || to != change.To {
		return nil, domainErrors.ErrInvalidState
	}
	if change.Action == model.ActionCancel {
		return r.CancelRestoring(ctx, change.OrderID, change.From)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	o, ok := r.s.orders[change.OrderID]
	if !ok || o.Status != change.From {
		return nil, domainErrors.ErrInvalidState
	}

	now := r.s.Now()
	switch change.Action {
	case model.ActionSetPrice:
		o.Price = change.Price
	case model.ActionPay:
		o.PaidAt = &now
	case model.ActionShip:
		o.ShippedAt = &now
		o.TrackingCode = change.TrackingCode
	case model.ActionConfirmDelivery:
	default:
		return nil, fmt.Errorf("unsupported order action %q", change.Action)
	}
	o.Status = change.To
	o.StatusChangedAt = now
	r.s.orders[o.ID] = o
	joined := r.s.joined(o)
	return &joined, nil
}

func (r *OrderStore) CancelRestoring(_ context.Context, orderID int64, from model.OrderStatus) (*model.Order, error) {
	if !from.Cancellable() {
		return nil, domainErrors.ErrInvalidState
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	o, ok := r.s.orders[orderID]
	if !ok || o.Status != from {
		return nil, domainErrors.ErrInvalidState
	}
	if err := r.s.restore(o.ListingID, o.Quantity); err != nil {
		return nil, err
	}
	o.Status = model.OrderStatusCancelled
	o.StatusChangedAt = r.s.Now()
	r.s.orders[o.ID] = o
	joined := r.s.joined(o)
	return &joined, nil
}

func (r *OrderStore) Rate(_ context.Context, orderID int64, rating int, comment string) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	o, ok := r.s.orders[orderID]
	if !ok || o.Status != model.OrderStatusDelivered || o.Rating != nil {
		return nil, domainErrors.ErrInvalidState
	}
	now := r.s.Now()
	o.Rating = &rating
	o.RatingComment = &comment
	o.RatedAt = &now
	r.s.orders[o.ID] = o
	joined := r.s.joined(o)
	return &joined, nil
}

var (
	_ repository.UserRepository    = (*UserRepositoryStub)(nil)
	_ repository.ListingRepository = (*ListingStore)(nil)
	_ repository.AddressRepository = (*AddressStore)(nil)
	_ repository.OrderRepository   = (*OrderStore)(nil)
)
