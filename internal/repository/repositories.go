// Package repository holds the SQL for properties, users and reservations.
//
// Every statement is parameterized with $n placeholders and issued through a
// Querier, so the same code runs against the pool, a transaction or a mock.
// Failures come back as *errs.InvalidCriteriaError (nothing was sent) or
// *errs.StoreError (the store failed).
package repository

import (
	"github.com/deppfellow/lightbnb/internal/server"
)

type Repositories struct {
	Properties   *PropertyRepository
	Users        *UserRepository
	Reservations *ReservationRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return NewRepositoriesWithQuerier(s.DB.Pool)
}

func NewRepositoriesWithQuerier(db Querier) *Repositories {
	return &Repositories{
		Properties:   NewPropertyRepository(db),
		Users:        NewUserRepository(db),
		Reservations: NewReservationRepository(db),
	}
}
