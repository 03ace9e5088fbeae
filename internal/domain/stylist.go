package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// LocationType where the appointment takes place
type LocationType string

const (
	LocationHomeStudio LocationType = "home_studio"
	LocationMobile     LocationType = "mobile"
)

// IsValid returns true for a known location type
func (l LocationType) IsValid() bool {
	return l == LocationHomeStudio || l == LocationMobile
}

// Stylist represents a service provider on the marketplace
type Stylist struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string

	Verified    bool
	RatingAvg   float64
	RatingCount int

	Bio                 *string
	PublicLocationLabel *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service one bookable service offered by a stylist
type Service struct {
	ID              uuid.UUID
	StylistID       uuid.UUID
	Name            string
	Price           float64
	DurationMinutes int
	HairIncluded    bool
	RequiresDeposit bool
	DepositAmount   float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveDurationMinutes returns the service duration, falling back to the
// marketplace default when the stored value is not positive
func (s *Service) EffectiveDurationMinutes() int {
	if s.DurationMinutes <= 0 {
		return DefaultServiceDurationMinutes
	}
	return s.DurationMinutes
}

// ApplyRating recalculates the running rating aggregate with one more review.
// The stored average is rounded to one decimal place, matching what profile
// pages display
func (st *Stylist) ApplyRating(rating int) {
	total := st.RatingAvg*float64(st.RatingCount) + float64(rating)
	st.RatingCount++
	st.RatingAvg = math.Round(total/float64(st.RatingCount)*10) / 10
}
