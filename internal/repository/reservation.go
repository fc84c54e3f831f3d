package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	db Querier
}

func NewReservationRepository(db Querier) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// GetAllReservations returns up to limit of a guest's finished
// reservations, oldest first, each with its property and the property's
// average rating.
func (r *ReservationRepository) GetAllReservations(ctx context.Context, guestID int64, limit int) ([]model.ReservationWithProperty, error) {
	const op = "reservations.get_all"

	if guestID <= 0 {
		return nil, errs.NewInvalidCriteria("guest_id", "must be greater than 0")
	}
	if err := checkLimit(limit); err != nil {
		return nil, err
	}

	sql := fmt.Sprintf(`SELECT reservations.id, reservations.start_date, reservations.end_date,
	reservations.property_id, reservations.guest_id,
	%s, avg(property_reviews.rating)::float8 AS average_rating
FROM reservations
JOIN properties ON properties.id = reservations.property_id
LEFT JOIN property_reviews ON property_reviews.property_id = properties.id
WHERE reservations.guest_id = $1
  AND reservations.end_date < now()::date
GROUP BY properties.id, reservations.id
ORDER BY reservations.start_date, reservations.id
LIMIT $2`, qualifiedPropertyColumns())

	rows, err := r.db.Query(ctx, sql, guestID, limit)
	if err != nil {
		return nil, errs.NewStoreError(op, err)
	}

	reservations, err := pgx.CollectRows(rows, scanReservationWithProperty)
	if err != nil {
		return nil, errs.NewStoreError(op, err)
	}

	return reservations, nil
}

// The reservation and property ids share a column name, so the row is
// scanned positionally.
func scanReservationWithProperty(row pgx.CollectableRow) (model.ReservationWithProperty, error) {
	var res model.ReservationWithProperty

	targets := []any{
		&res.ID,
		&res.StartDate,
		&res.EndDate,
		&res.PropertyID,
		&res.GuestID,
	}
	targets = append(targets, propertyScanTargets(&res.Property)...)
	targets = append(targets, &res.AverageRating)

	err := row.Scan(targets...)
	return res, err
}
