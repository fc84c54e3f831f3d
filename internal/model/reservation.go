package model

import "time"

type Reservation struct {
	ID         int64     `json:"id" db:"id"`
	StartDate  time.Time `json:"start_date" db:"start_date"`
	EndDate    time.Time `json:"end_date" db:"end_date"`
	PropertyID int64     `json:"property_id" db:"property_id"`
	GuestID    int64     `json:"guest_id" db:"guest_id"`
}

// ReservationWithProperty is one entry of a guest's reservation history.
type ReservationWithProperty struct {
	Reservation
	Property      Property `json:"property"`
	AverageRating *float64 `json:"average_rating"`
}
