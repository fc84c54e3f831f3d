package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/rs/zerolog"
)

type PropertyService struct {
	properties PropertyStore
}

func NewPropertyService(properties PropertyStore) *PropertyService {
	return &PropertyService{properties: properties}
}

// ListProperties searches properties matching criteria, cheapest first.
func (s *PropertyService) ListProperties(ctx context.Context, criteria model.PropertyCriteria, limit int) ([]model.ListedProperty, error) {
	properties, err := s.properties.GetAllProperties(ctx, criteria, limit)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Int("count", len(properties)).
		Int("limit", limit).
		Msg("listed properties")

	return properties, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, id int64) (*model.ListedProperty, error) {
	return s.properties.GetPropertyByID(ctx, id)
}

func (s *PropertyService) CreateProperty(ctx context.Context, payload *model.NewProperty) (*model.Property, error) {
	property, err := s.properties.AddProperty(ctx, payload)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("property_id", property.ID).
		Int64("owner_id", property.OwnerID).
		Msg("property created")

	return property, nil
}
