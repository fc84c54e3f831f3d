package handler

import (
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/service"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	users        *service.UserService
	reservations *service.ReservationService
}

func NewUserHandler(s *server.Server, users *service.UserService, reservations *service.ReservationService) *UserHandler {
	return &UserHandler{
		Handler:      NewHandler(s),
		users:        users,
		reservations: reservations,
	}
}

type RegisterUserRequest struct {
	model.NewUser
}

func (r *RegisterUserRequest) Validate() error {
	return r.NewUser.Validate()
}

func (h *UserHandler) RegisterUser(c echo.Context, req *RegisterUserRequest) (*model.User, error) {
	return h.users.Register(c.Request().Context(), &req.NewUser)
}

type GetUserRequest struct {
	ID int64 `param:"id" json:"id" validate:"required,gt=0"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) GetUser(c echo.Context, req *GetUserRequest) (*model.User, error) {
	return h.users.GetUser(c.Request().Context(), req.ID)
}

type ListReservationsRequest struct {
	GuestID int64  `param:"id" json:"id" validate:"required,gt=0"`
	Limit   string `query:"limit" json:"-"`

	limit int
}

func (r *ListReservationsRequest) Validate() error {
	var p queryParser
	limit := p.limit(r.Limit)
	if err := p.err(); err != nil {
		return err
	}
	if err := validation.Struct(r); err != nil {
		return err
	}
	r.limit = limit
	return nil
}

type ReservationList struct {
	Reservations []model.ReservationWithProperty `json:"reservations"`
}

func (l ReservationList) Len() int {
	return len(l.Reservations)
}

// ListReservations returns the guest's past reservations.
func (h *UserHandler) ListReservations(c echo.Context, req *ListReservationsRequest) (ReservationList, error) {
	reservations, err := h.reservations.ListPastReservations(c.Request().Context(), req.GuestID, req.limit)
	if err != nil {
		return ReservationList{}, err
	}
	return ReservationList{Reservations: reservations}, nil
}
