package handler

import (
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/service"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/labstack/echo/v4"
)

type PropertyHandler struct {
	Handler
	properties *service.PropertyService
}

func NewPropertyHandler(s *server.Server, properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		Handler:    NewHandler(s),
		properties: properties,
	}
}

// ListPropertiesRequest is the query string of GET /api/properties. Values
// arrive as strings so that an absent filter and a zero filter stay
// distinct.
type ListPropertiesRequest struct {
	City                 string `query:"city"`
	OwnerID              string `query:"owner_id"`
	MaximumPricePerNight string `query:"maximum_price_per_night"`
	MinimumPricePerNight string `query:"minimum_price_per_night"`
	MinimumRating        string `query:"minimum_rating"`
	Limit                string `query:"limit"`

	criteria model.PropertyCriteria
	limit    int
}

func (r *ListPropertiesRequest) Validate() error {
	var p queryParser

	criteria := model.PropertyCriteria{
		OwnerID:              p.int64("owner_id", r.OwnerID),
		MaximumPricePerNight: p.float64("maximum_price_per_night", r.MaximumPricePerNight),
		MinimumPricePerNight: p.float64("minimum_price_per_night", r.MinimumPricePerNight),
		MinimumRating:        p.float64("minimum_rating", r.MinimumRating),
	}
	if r.City != "" {
		city := r.City
		criteria.City = &city
	}
	limit := p.limit(r.Limit)

	if err := p.err(); err != nil {
		return err
	}
	if err := criteria.Validate(); err != nil {
		return err
	}

	r.criteria = criteria
	r.limit = limit
	return nil
}

// Criteria is the parsed filter set. Valid after Validate.
func (r *ListPropertiesRequest) Criteria() (model.PropertyCriteria, int) {
	return r.criteria, r.limit
}

type PropertyList struct {
	Properties []model.ListedProperty `json:"properties"`
}

func (l PropertyList) Len() int {
	return len(l.Properties)
}

func (h *PropertyHandler) ListProperties(c echo.Context, req *ListPropertiesRequest) (PropertyList, error) {
	criteria, limit := req.Criteria()

	properties, err := h.properties.ListProperties(c.Request().Context(), criteria, limit)
	if err != nil {
		return PropertyList{}, err
	}

	return PropertyList{Properties: properties}, nil
}

type GetPropertyRequest struct {
	ID int64 `param:"id" json:"id" validate:"required,gt=0"`
}

func (r *GetPropertyRequest) Validate() error {
	return validation.Struct(r)
}

func (h *PropertyHandler) GetProperty(c echo.Context, req *GetPropertyRequest) (*model.ListedProperty, error) {
	return h.properties.GetProperty(c.Request().Context(), req.ID)
}

type CreatePropertyRequest struct {
	model.NewProperty
}

func (r *CreatePropertyRequest) Validate() error {
	return r.NewProperty.Validate()
}

func (h *PropertyHandler) CreateProperty(c echo.Context, req *CreatePropertyRequest) (*model.Property, error) {
	return h.properties.CreateProperty(c.Request().Context(), &req.NewProperty)
}
