package repository

import (
	"context"

	"github.com/comprae/marketplace/internal/domain/model"
)

// AddressRepository stores shipping addresses.
type AddressRepository interface {
	Create(ctx context.Context, address model.Address) (*model.Address, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Address, error)
	GetForUser(ctx context.Context, userID int64) (*model.Address, error)
}
