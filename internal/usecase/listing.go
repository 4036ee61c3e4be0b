package usecase

import (
	"context"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
	"github.com/comprae/marketplace/internal/domain/repository"
)

// ListingUseCase manages seller listings and the public catalogue.
type ListingUseCase struct {
	listings repository.ListingRepository
}

func NewListingUseCase(listings repository.ListingRepository) *ListingUseCase {
	return &ListingUseCase{listings: listings}
}

// CreateListing publishes a new active listing owned by the seller.
func (u *ListingUseCase) CreateListing(ctx context.Context, seller model.Identity, in model.Listing) (*model.Listing, error) {
	if !seller.Role.CanSell() {
		return nil, domainErrors.ErrForbidden
	}
	if err := NormalizeListing(&in); err != nil {
		return nil, err
	}
	in.ID = 0
	in.SellerID = seller.UserID
	in.Active = true
	return u.listings.Create(ctx, in)
}

// UpdateListing replaces the editable fields of a listing owned by the seller.
func (u *ListingUseCase) UpdateListing(ctx context.Context, seller model.Identity, id int64, in model.Listing) (*model.Listing, error) {
	current, err := u.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.SellerID != seller.UserID {
		return nil, domainErrors.ErrForbidden
	}
	if err := NormalizeListing(&in); err != nil {
		return nil, err
	}
	in.ID = current.ID
	in.SellerID = current.SellerID
	in.CreatedAt = current.CreatedAt
	if err := u.listings.Update(ctx, in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (u *ListingUseCase) GetListing(ctx context.Context, id int64) (*model.Listing, error) {
	return u.listings.GetByID(ctx, id)
}

// SearchListings returns orderable listings matching filter, newest first.
func (u *ListingUseCase) SearchListings(ctx context.Context, filter model.ListingFilter) ([]model.Listing, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, domainErrors.Validation("min_price cannot exceed max_price")
	}
	return u.listings.Search(ctx, filter)
}

func (u *ListingUseCase) ListSellerListings(ctx context.Context, seller model.Identity) ([]model.Listing, error) {
	return u.listings.ListBySeller(ctx, seller.UserID)
}
