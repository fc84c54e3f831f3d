package model

import (
	"math"
	"strings"

	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/shopspring/decimal"
)

// DefaultPropertyLimit is the page size used when the caller gives none.
const DefaultPropertyLimit = 10

// MaxPricePerNight is the largest price, in major units, whose cents still
// fit the INTEGER cost_per_night column.
const MaxPricePerNight = 21474836.47

// PropertyCriteria is the optional filter set for a property search. A nil
// field (or an empty city) is not applied. Prices are in major currency
// units; the repository converts them to cents.
type PropertyCriteria struct {
	City                 *string  `json:"city,omitempty" validate:"omitempty,max=255"`
	OwnerID              *int64   `json:"owner_id,omitempty" validate:"omitempty,gt=0,max=2147483647"`
	MaximumPricePerNight *float64 `json:"maximum_price_per_night,omitempty" validate:"omitempty,gt=0,lte=21474836.47"`
	MinimumPricePerNight *float64 `json:"minimum_price_per_night,omitempty" validate:"omitempty,gte=0,lte=21474836.47"`
	MinimumRating        *float64 `json:"minimum_rating,omitempty" validate:"omitempty,gte=0"`
}

// Validate rejects negative or non-finite numbers and a minimum price above
// the maximum price.
func (c *PropertyCriteria) Validate() error {
	var custom validation.CustomValidationErrors

	numbers := []struct {
		field string
		value *float64
	}{
		{"maximum_price_per_night", c.MaximumPricePerNight},
		{"minimum_price_per_night", c.MinimumPricePerNight},
		{"minimum_rating", c.MinimumRating},
	}
	for _, n := range numbers {
		if n.value != nil && (math.IsNaN(*n.value) || math.IsInf(*n.value, 0)) {
			custom = append(custom, validation.CustomValidationError{Field: n.field, Message: "must be a finite number"})
		}
	}
	if len(custom) > 0 {
		return custom
	}

	if err := validateStruct(c); err != nil {
		return err
	}

	if c.MinimumPricePerNight != nil && c.MaximumPricePerNight != nil &&
		*c.MinimumPricePerNight > *c.MaximumPricePerNight {
		return validation.CustomValidationErrors{{
			Field:   "minimum_price_per_night",
			Message: "must not exceed maximum_price_per_night",
		}}
	}

	return nil
}

// CityPattern returns the ILIKE pattern for City and whether a city filter
// applies.
func (c *PropertyCriteria) CityPattern() (string, bool) {
	if c.City == nil {
		return "", false
	}
	city := strings.TrimSpace(*c.City)
	if city == "" {
		return "", false
	}
	return "%" + city + "%", true
}

// ToCents converts a major-unit price to cents, rounding half away from
// zero. 19.99 becomes 1999 without float drift.
func ToCents(price float64) int64 {
	return decimal.NewFromFloat(price).Shift(2).Round(0).IntPart()
}

func validateStruct(v any) error {
	return validation.Struct(v)
}
