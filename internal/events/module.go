package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/comprae/marketplace/internal/config"
)

// Module provides the order event publisher.
var Module = fx.Options(
	fx.Provide(newPublisher),
)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	var pub Publisher
	if p.Config.EventsEnabled() {
		pub = NewKafkaPublisher(p.Config.KafkaBrokers, p.Config.OrderEventsTopic)
		p.Logger.Info("order events enabled",
			slog.Any("brokers", p.Config.KafkaBrokers),
			slog.String("topic", p.Config.OrderEventsTopic),
		)
	} else {
		pub = NewNopPublisher(p.Logger)
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
