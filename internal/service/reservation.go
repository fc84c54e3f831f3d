package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
)

type ReservationService struct {
	reservations ReservationStore
}

func NewReservationService(reservations ReservationStore) *ReservationService {
	return &ReservationService{reservations: reservations}
}

// ListPastReservations returns a guest's finished stays, oldest first.
func (s *ReservationService) ListPastReservations(ctx context.Context, guestID int64, limit int) ([]model.ReservationWithProperty, error) {
	return s.reservations.GetAllReservations(ctx, guestID, limit)
}
