package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
)

// ReservationExpirer exposes the order operations the sweeper relies on.
type ReservationExpirer interface {
	ExpiredReservations(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
	ExpireOrder(ctx context.Context, orderID int64) (*model.Order, error)
}

// ExpiryRecorder counts reservations released by the sweeper.
type ExpiryRecorder interface {
	ReservationsExpired(ctx context.Context, n int)
}

// ReservationSweeper periodically cancels orders that kept stock reserved in
// NEGOTIATING or PENDING for longer than the configured TTL.
type ReservationSweeper struct {
	orders    ReservationExpirer
	recorder  ExpiryRecorder
	ttl       time.Duration
	interval  time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger
	now       func() time.Time

	jobs   chan int64
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// SweeperOptions tunes the sweeper; zero values fall back to defaults.
type SweeperOptions struct {
	TTL       time.Duration
	Interval  time.Duration
	BatchSize int
	Workers   int
}

// NewReservationSweeper constructs the sweeper worker pool.
func NewReservationSweeper(orders ReservationExpirer, recorder ExpiryRecorder, opts SweeperOptions, logger *slog.Logger) *ReservationSweeper {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	return &ReservationSweeper{
		orders:    orders,
		recorder:  recorder,
		ttl:       opts.TTL,
		interval:  opts.Interval,
		batchSize: opts.BatchSize,
		workers:   opts.Workers,
		logger:    logger,
		now:       time.Now,
	}
}

// Start launches the dispatcher and workers. A non-positive TTL disables sweeping.
func (s *ReservationSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 || s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.jobs = make(chan int64, s.batchSize)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx, s.jobs)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx, s.jobs)

	s.logger.Info("reservation sweeper started",
		slog.Duration("ttl", s.ttl),
		slog.Duration("interval", s.interval),
		slog.Int("workers", s.workers),
	)
}

// Stop cancels the sweep loop and waits for in-flight expirations.
func (s *ReservationSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *ReservationSweeper) dispatch(ctx context.Context, jobs chan<- int64) {
	defer s.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx, jobs)
		}
	}
}

func (s *ReservationSweeper) sweep(ctx context.Context, jobs chan<- int64) {
	cutoff := s.now().Add(-s.ttl)
	orders, err := s.orders.ExpiredReservations(ctx, cutoff, s.batchSize)
	if err != nil {
		s.logger.Error("select expired reservations failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case jobs <- order.ID:
		}
	}
}

func (s *ReservationSweeper) worker(ctx context.Context, jobs <-chan int64) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-jobs:
			if !ok {
				return
			}
			s.expire(ctx, id)
		}
	}
}

func (s *ReservationSweeper) expire(ctx context.Context, orderID int64) {
	_, err := s.orders.ExpireOrder(ctx, orderID)
	switch {
	case err == nil:
		s.recorder.ReservationsExpired(ctx, 1)
		s.logger.Info("reservation expired", slog.Int64("order_id", orderID))
	case errors.Is(err, domainErrors.ErrInvalidState), errors.Is(err, domainErrors.ErrNotFound):
		// the order moved on after it was selected
		s.logger.Debug("reservation no longer expirable", slog.Int64("order_id", orderID))
	default:
		s.logger.Error("expire reservation failed", slog.Int64("order_id", orderID), slog.String("error", err.Error()))
	}
}
