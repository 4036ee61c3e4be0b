package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/fx"

	"github.com/comprae/marketplace/internal/config"
	"github.com/comprae/marketplace/internal/usecase"
	"github.com/comprae/marketplace/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewMarketplaceFacade,
		newHTTPServer,
		newReservationSweeper,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: otelhttp.NewHandler(p.Router, "marketplace.http"),
	}
}

type sweeperParams struct {
	fx.In

	Orders   *usecase.OrderUseCase
	Recorder worker.ExpiryRecorder
	Config   *config.Config
	Logger   *slog.Logger
}

func newReservationSweeper(p sweeperParams) *worker.ReservationSweeper {
	return worker.NewReservationSweeper(
		p.Orders,
		p.Recorder,
		worker.SweeperOptions{
			TTL:       p.Config.ReservationTTL,
			Interval:  p.Config.SweepInterval,
			BatchSize: p.Config.SweepBatch,
			Workers:   p.Config.WorkerPoolSize,
		},
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Sweeper    *worker.ReservationSweeper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting marketplace",
				slog.String("addr", p.Server.Addr),
				slog.Bool("sweeper", p.Config.SweeperEnabled()),
				slog.Bool("events", p.Config.EventsEnabled()),
			)
			// the start context expires once fx finishes starting
			p.Sweeper.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Sweeper.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("marketplace stopped")
			return nil
		},
	})
}
