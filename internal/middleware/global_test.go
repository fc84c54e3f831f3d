package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(rateLimit float64) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{RateLimit: rateLimit},
		},
		Logger: &logger,
	}
}

// respond runs a route whose handler returns err through the full error
// path and decodes the body.
func respond(t *testing.T, err error) (int, errs.HTTPError) {
	t.Helper()

	s := newTestServer(0)
	mw := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.Use(RequestID(), mw.ContextEnhancer.EnhanceContext())
	e.GET("/x", func(c echo.Context) error { return err })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestGlobalErrorHandler_InvalidCriteria(t *testing.T) {
	status, body := respond(t, errs.NewInvalidCriteria("limit", "must be greater than 0"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_CRITERIA", body.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "limit", body.Errors[0].Field)
}

func TestGlobalErrorHandler_NoRows(t *testing.T) {
	status, body := respond(t, errs.NewStoreError("properties.get_by_id", pgx.ErrNoRows))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Property not found", body.Message)
}

func TestGlobalErrorHandler_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		TableName:      "users",
		ConstraintName: "users_email_key",
		Message:        "duplicate key value violates unique constraint",
	}
	status, body := respond(t, errs.NewStoreError("users.insert", pgErr))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "USER_ALREADY_EXISTS", body.Code)
}

func TestGlobalErrorHandler_UnknownErrorIsHidden(t *testing.T) {
	status, body := respond(t, fmt.Errorf("wrapped: %w", errors.New("dial tcp 10.0.0.1:5432: secret detail")))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	assert.NotContains(t, body.Message, "secret")
}

func TestGlobalErrorHandler_RouteNotFound(t *testing.T) {
	status, body := respond(t, echo.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Route not found", body.Message)
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, rec.Body.String(), 36)
}

func TestContextEnhancer_LoggerReachesRequestContext(t *testing.T) {
	mw := NewMiddlewares(newTestServer(0))

	e := echo.New()
	e.Use(RequestID(), mw.ContextEnhancer.EnhanceContext())

	var fromEcho, fromCtx *zerolog.Logger
	e.GET("/x", func(c echo.Context) error {
		fromEcho = GetLogger(c)
		fromCtx = zerolog.Ctx(c.Request().Context())
		return nil
	})
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	require.NotNil(t, fromEcho)
	assert.Same(t, fromEcho, fromCtx)
}

func TestRateLimiter(t *testing.T) {
	s := newTestServer(1)
	mw := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.Use(mw.RateLimit.Limiter())
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	codes := make([]int, 0, 2)
	for range 2 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_DisabledAtZero(t *testing.T) {
	mw := NewMiddlewares(newTestServer(0))

	e := echo.New()
	e.Use(mw.RateLimit.Limiter())
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for range 5 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequestID_OversizedHeaderIsReplaced(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("a", maxRequestIDLength+1))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Len(t, rec.Body.String(), 36)
}

func TestGlobalErrorHandler_HeadHasNoBody(t *testing.T) {
	mw := NewMiddlewares(newTestServer(0))

	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.HEAD("/x", func(c echo.Context) error { return errs.NewNotFoundError("Property not found", true, nil) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/x", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
