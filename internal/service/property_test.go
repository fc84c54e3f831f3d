package service

import (
	"context"
	"testing"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePropertyStore struct {
	criteria model.PropertyCriteria
	limit    int
	listed   []model.ListedProperty
	err      error
}

func (f *fakePropertyStore) GetAllProperties(_ context.Context, criteria model.PropertyCriteria, limit int) ([]model.ListedProperty, error) {
	f.criteria, f.limit = criteria, limit
	return f.listed, f.err
}

func (f *fakePropertyStore) GetPropertyByID(_ context.Context, id int64) (*model.ListedProperty, error) {
	for _, p := range f.listed {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, f.err
}

func (f *fakePropertyStore) AddProperty(_ context.Context, payload *model.NewProperty) (*model.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Property{ID: 1, OwnerID: payload.OwnerID, Title: payload.Title, Active: true}, nil
}

func TestListProperties_PassesCriteriaThrough(t *testing.T) {
	city := "Vancouver"
	store := &fakePropertyStore{listed: []model.ListedProperty{{Property: model.Property{ID: 3}}}}
	s := NewPropertyService(store)

	got, err := s.ListProperties(context.Background(), model.PropertyCriteria{City: &city}, 4)
	require.NoError(t, err)

	assert.Len(t, got, 1)
	assert.Equal(t, 4, store.limit)
	assert.Equal(t, &city, store.criteria.City)
}

func TestListProperties_ErrorIsNotSwallowed(t *testing.T) {
	storeErr := errs.NewInvalidCriteria("limit", "must be greater than 0")
	s := NewPropertyService(&fakePropertyStore{err: storeErr})

	got, err := s.ListProperties(context.Background(), model.PropertyCriteria{}, 0)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, errs.ErrInvalidCriteria)
}

func TestCreateProperty(t *testing.T) {
	s := NewPropertyService(&fakePropertyStore{})

	got, err := s.CreateProperty(context.Background(), &model.NewProperty{OwnerID: 2, Title: "Loft"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.OwnerID)
	assert.True(t, got.Active)
}
