package repository

import (
	"context"

	"github.com/comprae/marketplace/internal/domain/model"
)

// ListingRepository stores listings and owns the stock ledger.
type ListingRepository interface {
	Create(ctx context.Context, listing model.Listing) (*model.Listing, error)
	Update(ctx context.Context, listing model.Listing) error
	GetByID(ctx context.Context, id int64) (*model.Listing, error)
	Search(ctx context.Context, filter model.ListingFilter) ([]model.Listing, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.Listing, error)
	// DecrementStock reduces stock only when enough units remain; otherwise ErrUnavailable.
	DecrementStock(ctx context.Context, listingID int64, quantity int) error
	RestoreStock(ctx context.Context, listingID int64, quantity int) error
}
