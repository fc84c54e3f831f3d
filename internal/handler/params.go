package handler

import (
	"strconv"
	"strings"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
)

// queryParser turns optional query strings into typed values, collecting
// one error per malformed field.
type queryParser struct {
	errs validation.CustomValidationErrors
}

func (p *queryParser) int64(field, raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.errs = append(p.errs, validation.CustomValidationError{Field: field, Message: "must be an integer"})
		return nil
	}
	return &v
}

func (p *queryParser) float64(field, raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.errs = append(p.errs, validation.CustomValidationError{Field: field, Message: "must be a number"})
		return nil
	}
	return &v
}

// limit parses a page size, defaulting to model.DefaultPropertyLimit.
func (p *queryParser) limit(raw string) int {
	v := p.int64("limit", raw)
	if v == nil {
		return model.DefaultPropertyLimit
	}
	if *v <= 0 {
		p.errs = append(p.errs, validation.CustomValidationError{Field: "limit", Message: "must be greater than 0"})
		return 0
	}
	return int(*v)
}

func (p *queryParser) err() error {
	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}
