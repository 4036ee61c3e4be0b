package auth

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/comprae/marketplace/internal/config"
)

// Module provides password hashing and the token strategy.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newTokenStrategy(p strategyParams) Strategy {
	if p.Config.AuthSecret == config.DefaultAuthSecret {
		p.Logger.Warn("using the development auth secret, set AUTH_SECRET in production")
	}
	strategy := NewHMACStrategy(p.Config.AuthSecret, Options{TTL: p.Config.TokenTTL})
	p.Logger.Debug("token strategy ready",
		slog.String("strategy", strategy.Name()),
		slog.Duration("ttl", strategy.TTL()),
	)
	return strategy
}
