package telemetry

import (
	"context"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"

	"github.com/comprae/marketplace/internal/config"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// MetricsHandler serves the Prometheus scrape endpoint.
type MetricsHandler http.Handler

// Module provides meter and tracer providers and order metrics.
var Module = fx.Options(
	fx.Provide(newMeterProvider),
	fx.Provide(NewOrderMetrics),
	fx.Invoke(setupTracing),
)

type meterParams struct {
	fx.In

	Lifecycle fx.Lifecycle
}

type meterResult struct {
	fx.Out

	Provider metric.MeterProvider
	Handler  MetricsHandler
}

func newMeterProvider(p meterParams) (meterResult, error) {
	mp, handler, err := NewMeterProvider(Version)
	if err != nil {
		return meterResult{}, err
	}
	otel.SetMeterProvider(mp)
	p.Lifecycle.Append(fx.Hook{OnStop: mp.Shutdown})
	return meterResult{Provider: mp, Handler: handler}, nil
}

type tracingParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func setupTracing(p tracingParams) error {
	InstallPropagator()
	if p.Config.OTLPEndpoint == "" {
		return nil
	}

	tp, err := NewTracerProvider(p.Ctx, p.Config.OTLPEndpoint, Version)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(tp)
	p.Logger.Info("tracing enabled", slog.String("endpoint", p.Config.OTLPEndpoint))
	p.Lifecycle.Append(fx.Hook{OnStop: tp.Shutdown})
	return nil
}
