package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	criteria model.PropertyCriteria
	limit    int
	calls    int
	result   []model.ListedProperty
}

func (s *recordingStore) GetAllProperties(_ context.Context, criteria model.PropertyCriteria, limit int) ([]model.ListedProperty, error) {
	s.calls++
	s.criteria, s.limit = criteria, limit
	return s.result, nil
}

func (s *recordingStore) GetPropertyByID(context.Context, int64) (*model.ListedProperty, error) {
	return &model.ListedProperty{}, nil
}

func (s *recordingStore) AddProperty(_ context.Context, payload *model.NewProperty) (*model.Property, error) {
	return &model.Property{ID: 9, OwnerID: payload.OwnerID, Title: payload.Title}, nil
}

func newPropertyRoute(store *recordingStore) *echo.Echo {
	h := NewPropertyHandler(nil, service.NewPropertyService(store))

	e := echo.New()
	e.GET("/api/properties", Handle(h.ListProperties, http.StatusOK))
	e.POST("/api/properties", Handle(h.CreateProperty, http.StatusCreated))
	return e
}

func serve(e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	var handlerErr error
	e.HTTPErrorHandler = func(err error, c echo.Context) { handlerErr = err }
	e.ServeHTTP(rec, req)

	return rec, handlerErr
}

func TestListProperties_BindsQuery(t *testing.T) {
	rating := 4.5
	store := &recordingStore{result: []model.ListedProperty{{Property: model.Property{ID: 1}, AverageRating: &rating}}}
	e := newPropertyRoute(store)

	rec, err := serve(e, http.MethodGet,
		"/api/properties?city=Vancouver&owner_id=3&maximum_price_per_night=200&minimum_price_per_night=0&minimum_rating=4&limit=5", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, store.criteria.City)
	assert.Equal(t, "Vancouver", *store.criteria.City)
	assert.Equal(t, int64(3), *store.criteria.OwnerID)
	assert.Equal(t, 200.0, *store.criteria.MaximumPricePerNight)
	require.NotNil(t, store.criteria.MinimumPricePerNight, "zero is a filter, not absence")
	assert.Equal(t, 0.0, *store.criteria.MinimumPricePerNight)
	assert.Equal(t, 4.0, *store.criteria.MinimumRating)
	assert.Equal(t, 5, store.limit)

	var body struct {
		Properties []map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Properties, 1)
	assert.Equal(t, 4.5, body.Properties[0]["average_rating"])
}

func TestListProperties_Defaults(t *testing.T) {
	store := &recordingStore{result: []model.ListedProperty{}}
	e := newPropertyRoute(store)

	rec, err := serve(e, http.MethodGet, "/api/properties", "")
	require.NoError(t, err)

	assert.Equal(t, model.PropertyCriteria{}, store.criteria)
	assert.Equal(t, model.DefaultPropertyLimit, store.limit)
	assert.JSONEq(t, `{"properties":[]}`, rec.Body.String())
}

func TestListProperties_RejectsBadQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{name: "not a number", query: "minimum_rating=high", field: "minimum_rating"},
		{name: "negative price", query: "maximum_price_per_night=-5", field: "maximum_price_per_night"},
		{name: "zero limit", query: "limit=0", field: "limit"},
		{name: "min above max", query: "minimum_price_per_night=300&maximum_price_per_night=100", field: "minimum_price_per_night"},
		{name: "infinite", query: "minimum_rating=Inf", field: "minimum_rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingStore{}
			e := newPropertyRoute(store)

			_, err := serve(e, http.MethodGet, "/api/properties?"+tt.query, "")

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			require.NotEmpty(t, httpErr.Errors)
			assert.Equal(t, tt.field, httpErr.Errors[0].Field)
			assert.Zero(t, store.calls)
		})
	}
}

func TestListProperties_FreshRequestPerCall(t *testing.T) {
	store := &recordingStore{}
	e := newPropertyRoute(store)

	_, err := serve(e, http.MethodGet, "/api/properties?city=Toronto", "")
	require.NoError(t, err)
	_, err = serve(e, http.MethodGet, "/api/properties", "")
	require.NoError(t, err)

	assert.Nil(t, store.criteria.City)
}

func TestCreateProperty_ValidatesBody(t *testing.T) {
	e := newPropertyRoute(&recordingStore{})

	_, err := serve(e, http.MethodPost, "/api/properties", `{"title":"Loft"}`)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestCreateProperty(t *testing.T) {
	e := newPropertyRoute(&recordingStore{})

	rec, err := serve(e, http.MethodPost, "/api/properties", `{
		"owner_id": 2, "title": "Loft", "cost_per_night": 9900,
		"country": "Canada", "street": "1 Main", "city": "Vancouver", "province": "BC", "post_code": "V5K"
	}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":9`)
}
