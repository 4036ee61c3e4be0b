package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
)

const addressColumns = `id, user_id, title, street, number, complement, neighborhood, city, state, postal_code`

func scanAddress(row pgx.Row) (*model.Address, error) {
	var a model.Address
	if err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Street, &a.Number, &a.Complement,
		&a.Neighborhood, &a.City, &a.State, &a.PostalCode); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *addressRepository) Create(ctx context.Context, address model.Address) (*model.Address, error) {
	const query = `INSERT INTO addresses (user_id, title, street, number, complement, neighborhood, city, state, postal_code)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.storage.pool.QueryRow(ctx, query,
		address.UserID, address.Title, address.Street, address.Number, address.Complement,
		address.Neighborhood, address.City, address.State, address.PostalCode,
	).Scan(&address.ID)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	const query = `SELECT ` + addressColumns + ` FROM addresses WHERE user_id=$1 ORDER BY title, id`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *addressRepository) GetForUser(ctx context.Context, userID int64) (*model.Address, error) {
	const query = `SELECT ` + addressColumns + ` FROM addresses WHERE user_id=$1 ORDER BY title, id LIMIT 1`
	a, err := scanAddress(r.storage.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
