// Package service sits between handlers and repositories. It applies the
// business rules (password hashing, email normalization, welcome emails)
// and passes typed repository errors through untouched.
package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/lib/job"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/deppfellow/lightbnb/internal/server"
)

type PropertyStore interface {
	GetAllProperties(ctx context.Context, criteria model.PropertyCriteria, limit int) ([]model.ListedProperty, error)
	GetPropertyByID(ctx context.Context, id int64) (*model.ListedProperty, error)
	AddProperty(ctx context.Context, payload *model.NewProperty) (*model.Property, error)
}

type UserStore interface {
	GetUserWithEmail(ctx context.Context, email string) (*model.User, error)
	GetUserWithID(ctx context.Context, id int64) (*model.User, error)
	AddUser(ctx context.Context, payload *model.NewUser) (*model.User, error)
}

type ReservationStore interface {
	GetAllReservations(ctx context.Context, guestID int64, limit int) ([]model.ReservationWithProperty, error)
}

type Services struct {
	Properties   *PropertyService
	Users        *UserService
	Reservations *ReservationService
	Job          *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var enqueuer job.Enqueuer
	if s.Job != nil {
		enqueuer = s.Job.Client
	}

	return &Services{
		Properties:   NewPropertyService(repos.Properties),
		Users:        NewUserService(repos.Users, enqueuer),
		Reservations: NewReservationService(repos.Reservations),
		Job:          s.Job,
	}, nil
}
