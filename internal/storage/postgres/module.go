package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/comprae/marketplace/internal/config"
	"github.com/comprae/marketplace/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(func(s *Storage) repository.Factory { return s }),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.ListingRepository { return f.Listings() },
		func(f repository.Factory) repository.AddressRepository { return f.Addresses() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
	),
	fx.Invoke(registerLifecycle),
)

var runMigrations = Migrate

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	if p.Config.AutoMigrate {
		if err := runMigrations(p.Config.DatabaseURI, p.Logger); err != nil {
			return nil, err
		}
	}
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
