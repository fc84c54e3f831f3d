package router

import (
	"github.com/deppfellow/lightbnb/internal/handler"
	"github.com/deppfellow/lightbnb/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the health check, the docs UI and its
// static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.StaticFS("/static", static.FS)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
