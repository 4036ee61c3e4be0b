package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
)

const meterName = "github.com/comprae/marketplace/internal/usecase"

// OrderMetrics counts order transitions by action and status pair.
type OrderMetrics struct {
	transitions metric.Int64Counter
	rejections  metric.Int64Counter
	expired     metric.Int64Counter
}

func NewOrderMetrics(mp metric.MeterProvider) (*OrderMetrics, error) {
	meter := mp.Meter(meterName)

	transitions, err := meter.Int64Counter("marketplace.order.transitions",
		metric.WithDescription("Order status transitions applied"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	rejections, err := meter.Int64Counter("marketplace.order.rejections",
		metric.WithDescription("Order actions rejected, by error kind"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, err
	}

	expired, err := meter.Int64Counter("marketplace.order.reservations_expired",
		metric.WithDescription("Reservations cancelled by the sweeper"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	return &OrderMetrics{transitions: transitions, rejections: rejections, expired: expired}, nil
}

func (m *OrderMetrics) TransitionApplied(ctx context.Context, action model.OrderAction, from, to model.OrderStatus) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", string(action)),
		attribute.String("from", string(from)),
		attribute.String("to", string(to)),
	))
}

func (m *OrderMetrics) TransitionRejected(ctx context.Context, action model.OrderAction, kind domainErrors.Kind) {
	m.rejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", string(action)),
		attribute.String("kind", string(kind)),
	))
}

// ReservationsExpired adds n sweeper cancellations.
func (m *OrderMetrics) ReservationsExpired(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	m.expired.Add(ctx, int64(n))
}
