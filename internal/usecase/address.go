package usecase

import (
	"context"

	"github.com/comprae/marketplace/internal/domain/model"
	"github.com/comprae/marketplace/internal/domain/repository"
)

// AddressUseCase manages the shipping addresses of a user.
type AddressUseCase struct {
	addresses repository.AddressRepository
}

func NewAddressUseCase(addresses repository.AddressRepository) *AddressUseCase {
	return &AddressUseCase{addresses: addresses}
}

func (u *AddressUseCase) AddAddress(ctx context.Context, user model.Identity, in model.Address) (*model.Address, error) {
	if err := NormalizeAddress(&in); err != nil {
		return nil, err
	}
	in.ID = 0
	in.UserID = user.UserID
	return u.addresses.Create(ctx, in)
}

// ListAddresses returns the user's addresses ordered by title.
func (u *AddressUseCase) ListAddresses(ctx context.Context, user model.Identity) ([]model.Address, error) {
	return u.addresses.ListByUser(ctx, user.UserID)
}

// AddressForUser returns the address new orders ship to.
func (u *AddressUseCase) AddressForUser(ctx context.Context, user model.Identity) (*model.Address, error) {
	return u.addresses.GetForUser(ctx, user.UserID)
}
