// Package model holds the rows the repositories read and write, and the
// payloads used to create them.
package model

// Property is a row of the properties table. CostPerNight is in cents.
type Property struct {
	ID                int64  `json:"id" db:"id"`
	OwnerID           int64  `json:"owner_id" db:"owner_id"`
	Title             string `json:"title" db:"title"`
	Description       string `json:"description" db:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" db:"thumbnail_photo_url"`
	CoverPhotoURL     string `json:"cover_photo_url" db:"cover_photo_url"`
	CostPerNight      int64  `json:"cost_per_night" db:"cost_per_night"`
	ParkingSpaces     int32  `json:"parking_spaces" db:"parking_spaces"`
	NumberOfBathrooms int32  `json:"number_of_bathrooms" db:"number_of_bathrooms"`
	NumberOfBedrooms  int32  `json:"number_of_bedrooms" db:"number_of_bedrooms"`
	Country           string `json:"country" db:"country"`
	Street            string `json:"street" db:"street"`
	City              string `json:"city" db:"city"`
	Province          string `json:"province" db:"province"`
	PostCode          string `json:"post_code" db:"post_code"`
	Active            bool   `json:"active" db:"active"`
}

// ListedProperty is a Property with the mean of its review ratings.
// AverageRating is nil when the property has no reviews.
type ListedProperty struct {
	Property
	AverageRating *float64 `json:"average_rating" db:"average_rating"`
}

// NewProperty is the insert payload. CostPerNight is in cents.
type NewProperty struct {
	OwnerID           int64  `json:"owner_id" validate:"required,gt=0,max=2147483647"`
	Title             string `json:"title" validate:"required,max=255"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" validate:"omitempty,url,max=255"`
	CoverPhotoURL     string `json:"cover_photo_url" validate:"omitempty,url,max=255"`
	CostPerNight      int64  `json:"cost_per_night" validate:"gte=0,lte=2147483647"`
	ParkingSpaces     int32  `json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int32  `json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int32  `json:"number_of_bedrooms" validate:"gte=0"`
	Country           string `json:"country" validate:"required,max=255"`
	Street            string `json:"street" validate:"required,max=255"`
	City              string `json:"city" validate:"required,max=255"`
	Province          string `json:"province" validate:"required,max=255"`
	PostCode          string `json:"post_code" validate:"required,max=255"`
}

func (p *NewProperty) Validate() error {
	return validateStruct(p)
}
