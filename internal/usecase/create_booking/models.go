package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
)

// Request входные данные для создания бронирования
type Request struct {
	ClientID           uuid.UUID
	StylistID          uuid.UUID
	ServiceID          uuid.UUID
	StartAt            time.Time
	EndAt              time.Time
	LocationType       string
	MobileLocationNote *string
}

// Response созданное бронирование
type Response struct {
	Booking *domain.Booking
}
