package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
)

// ExpirerStub serves queued batches of expired reservations to the sweeper.
type ExpirerStub struct {
	mu       sync.Mutex
	Batches  [][]model.Order
	SelectFn func(context.Context, time.Time, int) ([]model.Order, error)
	ExpireFn func(context.Context, int64) (*model.Order, error)

	cutoffs []time.Time
	limits  []int
	expired []int64
}

func (s *ExpirerStub) ExpiredReservations(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	s.mu.Lock()
	s.cutoffs = append(s.cutoffs, cutoff)
	s.limits = append(s.limits, limit)
	var batch []model.Order
	if len(s.Batches) > 0 {
		batch, s.Batches = s.Batches[0], s.Batches[1:]
	}
	s.mu.Unlock()

	if s.SelectFn != nil {
		return s.SelectFn(ctx, cutoff, limit)
	}
	return batch, nil
}

func (s *ExpirerStub) ExpireOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.ExpireFn != nil {
		if _, err := s.ExpireFn(ctx, orderID); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = append(s.expired, orderID)
	return &model.Order{ID: orderID, Status: model.OrderStatusCancelled}, nil
}

// Expired returns ids successfully expired so far.
func (s *ExpirerStub) Expired() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.expired...)
}

// Selections returns the cutoff and limit of every selection call.
func (s *ExpirerStub) Selections() ([]time.Time, []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.cutoffs...), append([]int(nil), s.limits...)
}

// ExpiryRecorderStub sums sweeper expirations.
type ExpiryRecorderStub struct {
	mu    sync.Mutex
	Total int
}

func (r *ExpiryRecorderStub) ReservationsExpired(_ context.Context, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Total += n
}

func (r *ExpiryRecorderStub) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Total
}

// InvalidStateFor fails expiration for the listed order ids.
func InvalidStateFor(ids ...int64) func(context.Context, int64) (*model.Order, error) {
	return func(_ context.Context, id int64) (*model.Order, error) {
		for _, blocked := range ids {
			if blocked == id {
				return nil, domainErrors.ErrInvalidState
			}
		}
		return nil, nil
	}
}
