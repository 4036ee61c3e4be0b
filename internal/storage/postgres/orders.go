package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
)

const orderColumns = `o.id, o.address_id, o.buyer_id, o.listing_id, l.seller_id, l.name, o.quantity, o.price, o.status,
                      o.ordered_at, o.status_changed_at, o.paid_at, o.shipped_at, o.tracking_code, o.rating, o.rating_comment, o.rated_at,
                      o.ship_street, o.ship_number, o.ship_complement, o.ship_neighborhood, o.ship_city, o.ship_state, o.ship_postal_code`

const selectOrders = `SELECT ` + orderColumns + ` FROM orders o JOIN listings l ON l.id = o.listing_id`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.AddressID, &o.BuyerID, &o.ListingID, &o.SellerID, &o.ListingName, &o.Quantity, &o.Price, &o.Status,
		&o.OrderedAt, &o.StatusChangedAt, &o.PaidAt, &o.ShippedAt, &o.TrackingCode, &o.Rating, &o.RatingComment, &o.RatedAt,
		&o.Shipping.Street, &o.Shipping.Number, &o.Shipping.Complement, &o.Shipping.Neighborhood,
		&o.Shipping.City, &o.Shipping.State, &o.Shipping.PostalCode)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) CreateReserving(ctx context.Context, order model.Order) (*model.Order, error) {
	const insertQuery = `INSERT INTO orders (address_id, buyer_id, listing_id, quantity, price, status,
                             ship_street, ship_number, ship_complement, ship_neighborhood, ship_city, ship_state, ship_postal_code)
                         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
                         RETURNING id, ordered_at, status_changed_at`

	if order.Quantity <= 0 {
		order.Quantity = 1
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := decrementStock(ctx, tx, order.ListingID, order.Quantity); err != nil {
			return err
		}
		s := order.Shipping
		return tx.QueryRow(ctx, insertQuery,
			order.AddressID, order.BuyerID, order.ListingID, order.Quantity, order.Price, order.Status,
			s.Street, s.Number, s.Complement, s.Neighborhood, s.City, s.State, s.PostalCode,
		).Scan(&order.ID, &order.OrderedAt, &order.StatusChangedAt)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return getOrder(ctx, r.storage.pool, id)
}

func getOrder(ctx context.Context, q queryer, id int64) (*model.Order, error) {
	o, err := scanOrder(q.QueryRow(ctx, selectOrders+` WHERE o.id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	return r.list(ctx, selectOrders+` WHERE o.buyer_id=$1 ORDER BY o.ordered_at DESC`, buyerID)
}

func (r *orderRepository) ListBySeller(ctx context.Context, sellerID int64) ([]model.Order, error) {
	return r.list(ctx, selectOrders+` WHERE l.seller_id=$1 ORDER BY o.ordered_at DESC`, sellerID)
}

// SelectExpiredReservations returns open orders whose status has not changed
// since changedBefore, oldest first.
func (r *orderRepository) SelectExpiredReservations(ctx context.Context, changedBefore time.Time, limit int) ([]model.Order, error) {
	const query = selectOrders + `
                   WHERE o.status IN ('NEGOTIATING', 'PENDING') AND o.status_changed_at < $1
                   ORDER BY o.status_changed_at
                   LIMIT $2
                   FOR UPDATE OF o SKIP LOCKED`
	return r.list(ctx, query, changedBefore, limit)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ApplyTransition(ctx context.Context, change model.StatusChange) (*model.Order, error) {
	if to, ok := change.From.Next(change.Action); !ok || to != change.To {
		return nil, domainErrors.ErrInvalidState
	}

	var (
		query string
		args  = []any{change.OrderID, change.From, change.To}
	)
	switch change.Action {
	case model.ActionSetPrice:
		query = `UPDATE orders SET status=$3, status_changed_at=NOW(), price=$4 WHERE id=$1 AND status=$2`
		args = append(args, change.Price)
	case model.ActionPay:
		query = `UPDATE orders SET status=$3, status_changed_at=NOW(), paid_at=NOW() WHERE id=$1 AND status=$2`
	case model.ActionShip:
		query = `UPDATE orders SET status=$3, status_changed_at=NOW(), shipped_at=NOW(), tracking_code=$4 WHERE id=$1 AND status=$2`
		args = append(args, change.TrackingCode)
	case model.ActionConfirmDelivery:
		query = `UPDATE orders SET status=$3, status_changed_at=NOW() WHERE id=$1 AND status=$2`
	case model.ActionCancel:
		return r.CancelRestoring(ctx, change.OrderID, change.From)
	default:
		return nil, fmt.Errorf("unsupported order action %q", change.Action)
	}

	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrInvalidState
		}
		order, err = getOrder(ctx, tx, change.OrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) CancelRestoring(ctx context.Context, orderID int64, from model.OrderStatus) (*model.Order, error) {
	const cancelQuery = `UPDATE orders SET status=$3, status_changed_at=NOW()
                          WHERE id=$1 AND status=$2 RETURNING listing_id, quantity`

	if !from.Cancellable() {
		return nil, domainErrors.ErrInvalidState
	}

	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var (
			listingID int64
			quantity  int
		)
		err := tx.QueryRow(ctx, cancelQuery, orderID, from, model.OrderStatusCancelled).Scan(&listingID, &quantity)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrInvalidState
			}
			return err
		}
		if err := restoreStock(ctx, tx, listingID, quantity); err != nil {
			return err
		}
		order, err = getOrder(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) Rate(ctx context.Context, orderID int64, rating int, comment string) (*model.Order, error) {
	const query = `UPDATE orders SET rating=$2, rating_comment=$3, rated_at=NOW()
                   WHERE id=$1 AND status=$4 AND rating IS NULL`

	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, orderID, rating, comment, model.OrderStatusDelivered)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrInvalidState
		}
		order, err = getOrder(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
