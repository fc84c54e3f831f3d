// Package handler is the HTTP layer: it binds and validates requests,
// calls the services and writes JSON responses. Errors are returned to the
// global error handler untouched.
package handler

import (
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/service"
)

type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Property *PropertyHandler
	User     *UserHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Property: NewPropertyHandler(s, services.Properties),
		User:     NewUserHandler(s, services.Users, services.Reservations),
	}
}
