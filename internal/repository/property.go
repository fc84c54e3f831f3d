package repository

import (
	"context"
	"fmt"
	"iter"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/jackc/pgx/v5"
)

type PropertyRepository struct {
	db Querier
}

func NewPropertyRepository(db Querier) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// GetAllProperties returns up to limit properties matching
// criteria, cheapest first, each with its average review rating.
//
// Invalid criteria or a non-positive limit fail with
// *errs.InvalidCriteriaError before any statement is issued. Store failures
// are *errs.StoreError. No match is an empty, non-nil slice.
func (r *PropertyRepository) GetAllProperties(ctx context.Context, criteria model.PropertyCriteria, limit int) ([]model.ListedProperty, error) {
	seq, err := r.StreamProperties(ctx, criteria, limit)
	if err != nil {
		return nil, err
	}

	properties := []model.ListedProperty{}
	for property, err := range seq {
		if err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}

	return properties, nil
}

// StreamProperties is the lazy form of GetAllProperties. The statement runs
// immediately; rows are decoded as the sequence is ranged over. The
// sequence holds a pooled connection until it is exhausted or the loop
// breaks, and cannot be ranged over twice.
func (r *PropertyRepository) StreamProperties(ctx context.Context, criteria model.PropertyCriteria, limit int) (iter.Seq2[model.ListedProperty, error], error) {
	const op = "properties.get_all"

	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	if err := validation.Check(&criteria); err != nil {
		return nil, err
	}

	sql, args := newPropertyQuery(criteria, limit).build()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, errs.NewStoreError(op, err)
	}

	return func(yield func(model.ListedProperty, error) bool) {
		defer rows.Close()

		for rows.Next() {
			property, err := pgx.RowToStructByName[model.ListedProperty](rows)
			if err != nil {
				yield(model.ListedProperty{}, errs.NewStoreError(op, err))
				return
			}
			if !yield(property, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(model.ListedProperty{}, errs.NewStoreError(op, err))
		}
	}, nil
}

// GetPropertyByID returns one property with its average rating. A missing
// id is a *errs.StoreError wrapping pgx.ErrNoRows.
func (r *PropertyRepository) GetPropertyByID(ctx context.Context, id int64) (*model.ListedProperty, error) {
	const op = "properties.get_by_id"

	rows, err := r.db.Query(ctx, getPropertyByIDSQL(), id)
	if err != nil {
		return nil, errs.NewStoreError(op, err)
	}

	property, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.ListedProperty])
	if err != nil {
		return nil, errs.NewStoreError(op, err)
	}

	return &property, nil
}

func getPropertyByIDSQL() string {
	return fmt.Sprintf(selectListedProperties, qualifiedPropertyColumns()) + `
WHERE properties.id = $1
GROUP BY properties.id`
}

// AddProperty inserts a property and returns the stored row.
func (r *PropertyRepository) AddProperty(ctx context.Context, payload *model.NewProperty) (*model.Property, error) {
	const op = "properties.insert"

	if err := validation.Check(payload); err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf(`INSERT INTO properties (
	owner_id, title, description, thumbnail_photo_url, cover_photo_url,
	cost_per_night, parking_spaces, number_of_bathrooms, number_of_bedrooms,
	country, street, city, province, post_code
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING %s`, qualifiedPropertyColumns())

	rows, err := r.db.Query(ctx, stmt,
		payload.OwnerID,
		payload.Title,
		payload.Description,
		payload.ThumbnailPhotoURL,
		payload.CoverPhotoURL,
		payload.CostPerNight,
		payload.ParkingSpaces,
		payload.NumberOfBathrooms,
		payload.NumberOfBedrooms,
		payload.Country,
		payload.Street,
		payload.City,
		payload.Province,
		payload.PostCode,
	)
	if err != nil {
		return nil, errs.NewStoreError(op, err)
	}

	property, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Property])
	if err != nil {
		return nil, errs.NewStoreError(op, err)
	}

	return &property, nil
}
