package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
)

const listingColumns = `id, seller_id, category_id, name, description, weight, price, stock, active, created_at`

const (
	decrementStockQuery = `UPDATE listings SET stock = stock - $2 WHERE id = $1 AND stock >= $2 AND active`
	restoreStockQuery   = `UPDATE listings SET stock = stock + $2 WHERE id = $1`
)

func scanListing(row pgx.Row) (*model.Listing, error) {
	var l model.Listing
	if err := row.Scan(&l.ID, &l.SellerID, &l.CategoryID, &l.Name, &l.Description,
		&l.Weight, &l.Price, &l.Stock, &l.Active, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *listingRepository) Create(ctx context.Context, listing model.Listing) (*model.Listing, error) {
	const query = `INSERT INTO listings (seller_id, category_id, name, description, weight, price, stock, active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		listing.SellerID, listing.CategoryID, listing.Name, listing.Description,
		listing.Weight, listing.Price, listing.Stock, listing.Active,
	).Scan(&listing.ID, &listing.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) Update(ctx context.Context, listing model.Listing) error {
	const query = `UPDATE listings
                   SET category_id=$3, name=$4, description=$5, weight=$6, price=$7, stock=$8, active=$9
                   WHERE id=$1 AND seller_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query,
		listing.ID, listing.SellerID, listing.CategoryID, listing.Name, listing.Description,
		listing.Weight, listing.Price, listing.Stock, listing.Active,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings WHERE id=$1`
	l, err := scanListing(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *listingRepository) Search(ctx context.Context, filter model.ListingFilter) ([]model.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings
                   WHERE active AND stock > 0
                     AND ($1 = '' OR name ILIKE '%' || $1 || '%')
                     AND ($2::BIGINT IS NULL OR category_id = $2)
                     AND ($3::NUMERIC IS NULL OR price >= $3)
                     AND ($4::NUMERIC IS NULL OR price <= $4)
                   ORDER BY created_at DESC`
	return r.list(ctx, query, filter.Query, filter.CategoryID, filter.MinPrice, filter.MaxPrice)
}

func (r *listingRepository) ListBySeller(ctx context.Context, sellerID int64) ([]model.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings WHERE seller_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, sellerID)
}

func (r *listingRepository) list(ctx context.Context, query string, args ...any) ([]model.Listing, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *listingRepository) DecrementStock(ctx context.Context, listingID int64, quantity int) error {
	return decrementStock(ctx, r.storage.pool, listingID, quantity)
}

func (r *listingRepository) RestoreStock(ctx context.Context, listingID int64, quantity int) error {
	return restoreStock(ctx, r.storage.pool, listingID, quantity)
}

// decrementStock never takes stock below zero. No affected row means the
// listing is inactive or lacks the requested units.
func decrementStock(ctx context.Context, q queryer, listingID int64, quantity int) error {
	tag, err := q.Exec(ctx, decrementStockQuery, listingID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrUnavailable
	}
	return nil
}

func restoreStock(ctx context.Context, q queryer, listingID int64, quantity int) error {
	tag, err := q.Exec(ctx, restoreStockQuery, listingID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
