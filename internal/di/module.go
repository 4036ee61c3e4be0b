package di

import (
	"go.uber.org/fx"

	"github.com/comprae/marketplace/internal/app"
	"github.com/comprae/marketplace/internal/config"
	"github.com/comprae/marketplace/internal/events"
	"github.com/comprae/marketplace/internal/logger"
	"github.com/comprae/marketplace/internal/pkg/auth"
	"github.com/comprae/marketplace/internal/server/http/handlers"
	"github.com/comprae/marketplace/internal/server/http/router"
	"github.com/comprae/marketplace/internal/storage/postgres"
	"github.com/comprae/marketplace/internal/telemetry"
	"github.com/comprae/marketplace/internal/usecase"
	"github.com/comprae/marketplace/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		telemetry.Module,
		auth.Module,
		postgres.Module,
		events.Module,
		usecase.Module,
		fx.Provide(
			func(p events.Publisher) usecase.EventPublisher { return p },
			func(m *telemetry.OrderMetrics) usecase.TransitionRecorder { return m },
			func(m *telemetry.OrderMetrics) worker.ExpiryRecorder { return m },
			func(s *postgres.Storage) handlers.HealthChecker { return s },
			func(f *app.MarketplaceFacade) handlers.MarketplaceFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
