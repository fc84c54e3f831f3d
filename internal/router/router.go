// Package router builds the echo instance: global middleware in order, then
// the system routes and the /api group.
package router

import (
	"net/http"

	"github.com/deppfellow/lightbnb/internal/handler"
	"github.com/deppfellow/lightbnb/internal/middleware"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limiter(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerPropertyRoutes(api, h)
	registerUserRoutes(api, h)

	return router
}

func registerPropertyRoutes(api *echo.Group, h *handler.Handlers) {
	properties := api.Group("/properties")
	properties.GET("", handler.Handle(h.Property.ListProperties, http.StatusOK))
	properties.POST("", handler.Handle(h.Property.CreateProperty, http.StatusCreated))
	properties.GET("/:id", handler.Handle(h.Property.GetProperty, http.StatusOK))
}

func registerUserRoutes(api *echo.Group, h *handler.Handlers) {
	users := api.Group("/users")
	users.POST("", handler.Handle(h.User.RegisterUser, http.StatusCreated))
	users.GET("/:id", handler.Handle(h.User.GetUser, http.StatusOK))
	users.GET("/:id/reservations", handler.Handle(h.User.ListReservations, http.StatusOK))
}
