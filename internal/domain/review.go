package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review a client's review of a completed booking. One review per booking
type Review struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	ClientID   uuid.UUID
	ClientName string
	StylistID  uuid.UUID
	Rating     int // 1..5
	Comment    string

	CreatedAt time.Time
}

// IsValidRating returns true for a rating within the allowed range
func IsValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
