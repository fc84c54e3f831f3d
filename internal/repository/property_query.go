package repository

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/deppfellow/lightbnb/internal/model"
)

// stage says where a predicate is evaluated: on raw rows before GROUP BY,
// or on the per-property aggregate after it.
type stage int

const (
	stageWhere stage = iota
	stageHaving
)

// Emission order of the filters. Placeholders are numbered in this order
// whatever order the predicates were added in.
const (
	rankCity = iota
	rankOwner
	rankMaxPrice
	rankMinPrice
	rankMinRating
)

// predicate is one filter: "<expr> <op> $n" bound to value.
type predicate struct {
	rank  int
	stage stage
	expr  string
	op    string
	value any
}

func cityPredicate(pattern string) predicate {
	return predicate{rank: rankCity, stage: stageWhere, expr: "properties.city", op: "ILIKE", value: pattern}
}

func ownerPredicate(ownerID int64) predicate {
	return predicate{rank: rankOwner, stage: stageWhere, expr: "properties.owner_id", op: "=", value: ownerID}
}

func maxPricePredicate(cents int64) predicate {
	return predicate{rank: rankMaxPrice, stage: stageWhere, expr: "properties.cost_per_night", op: "<", value: cents}
}

func minPricePredicate(cents int64) predicate {
	return predicate{rank: rankMinPrice, stage: stageWhere, expr: "properties.cost_per_night", op: ">", value: cents}
}

func minRatingPredicate(rating float64) predicate {
	return predicate{rank: rankMinRating, stage: stageHaving, expr: "avg(property_reviews.rating)", op: ">=", value: rating}
}

// criteriaPredicates lists the predicates that apply for c.
func criteriaPredicates(c model.PropertyCriteria) []predicate {
	var preds []predicate

	if pattern, ok := c.CityPattern(); ok {
		preds = append(preds, cityPredicate(pattern))
	}
	if c.OwnerID != nil {
		preds = append(preds, ownerPredicate(*c.OwnerID))
	}
	if c.MaximumPricePerNight != nil {
		preds = append(preds, maxPricePredicate(model.ToCents(*c.MaximumPricePerNight)))
	}
	if c.MinimumPricePerNight != nil {
		preds = append(preds, minPricePredicate(model.ToCents(*c.MinimumPricePerNight)))
	}
	if c.MinimumRating != nil {
		preds = append(preds, minRatingPredicate(*c.MinimumRating))
	}

	return preds
}

// propertyQuery assembles the listing statement. It is built per call and
// never shared.
type propertyQuery struct {
	predicates []predicate
	limit      int
}

func newPropertyQuery(c model.PropertyCriteria, limit int) *propertyQuery {
	q := &propertyQuery{limit: limit}
	for _, p := range criteriaPredicates(c) {
		q.add(p)
	}
	return q
}

func (q *propertyQuery) add(p predicate) {
	q.predicates = append(q.predicates, p)
}

const selectListedProperties = `SELECT %s, avg(property_reviews.rating)::float8 AS average_rating
FROM properties
LEFT JOIN property_reviews ON property_reviews.property_id = properties.id`

// build returns the SQL text and its arguments. Every predicate adds one
// argument; the limit is always the last one.
func (q *propertyQuery) build() (string, []any) {
	preds := slices.Clone(q.predicates)
	slices.SortStableFunc(preds, func(a, b predicate) int {
		return cmp.Compare(a.rank, b.rank)
	})

	args := make([]any, 0, len(preds)+1)
	var where, having []string

	for _, p := range preds {
		args = append(args, p.value)
		clause := fmt.Sprintf("%s %s $%d", p.expr, p.op, len(args))

		switch p.stage {
		case stageHaving:
			having = append(having, clause)
		default:
			where = append(where, clause)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, selectListedProperties, qualifiedPropertyColumns())

	if len(where) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(where, "\n  AND "))
	}

	sb.WriteString("\nGROUP BY properties.id")

	if len(having) > 0 {
		sb.WriteString("\nHAVING ")
		sb.WriteString(strings.Join(having, "\n  AND "))
	}

	args = append(args, q.limit)
	fmt.Fprintf(&sb, "\nORDER BY properties.cost_per_night, properties.id\nLIMIT $%d", len(args))

	return sb.String(), args
}
