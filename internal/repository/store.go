package repository

import (
	"context"
	"strings"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgx/v5"
)

// Querier is the only thing repositories need from the store: run a
// parameterized statement with $n placeholders and read its rows. Inserts
// use RETURNING, so they go through Query as well. *pgxpool.Pool, *pgx.Conn
// and pgx.Tx all satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// propertyColumns is the column order shared by every statement that
// returns properties.
var propertyColumns = []string{
	"id",
	"owner_id",
	"title",
	"description",
	"thumbnail_photo_url",
	"cover_photo_url",
	"cost_per_night",
	"parking_spaces",
	"number_of_bathrooms",
	"number_of_bedrooms",
	"country",
	"street",
	"city",
	"province",
	"post_code",
	"active",
}

// qualifiedPropertyColumns renders "properties.id, properties.owner_id, ...".
func qualifiedPropertyColumns() string {
	cols := make([]string, len(propertyColumns))
	for i, c := range propertyColumns {
		cols[i] = "properties." + c
	}
	return strings.Join(cols, ", ")
}

func propertyScanTargets(p *model.Property) []any {
	return []any{
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.ThumbnailPhotoURL,
		&p.CoverPhotoURL,
		&p.CostPerNight,
		&p.ParkingSpaces,
		&p.NumberOfBathrooms,
		&p.NumberOfBedrooms,
		&p.Country,
		&p.Street,
		&p.City,
		&p.Province,
		&p.PostCode,
		&p.Active,
	}
}

func checkLimit(limit int) error {
	if limit <= 0 {
		return errs.NewInvalidCriteria("limit", "must be greater than 0")
	}
	return nil
}
