package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	bookingModels "github.com/strandly/booking-service/internal/service/bookings/models"
	createBooking "github.com/strandly/booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP модель запроса на создание бронирования
type CreateBookingRequest struct {
	StylistID          string    `json:"stylistId"`
	ServiceID          string    `json:"serviceId"`
	StartAt            time.Time `json:"startAt"`
	EndAt              time.Time `json:"endAt"`
	LocationType       string    `json:"locationType"`
	MobileLocationNote *string   `json:"mobileLocationNote,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID uuid.UUID) (*createBooking.Request, error) {
	stylistID, err := uuid.Parse(r.StylistID)
	if err != nil {
		return nil, fmt.Errorf("invalid stylistId: %w", err)
	}

	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid serviceId: %w", err)
	}

	return &createBooking.Request{
		ClientID:           clientID,
		StylistID:          stylistID,
		ServiceID:          serviceID,
		StartAt:            r.StartAt,
		EndAt:              r.EndAt,
		LocationType:       r.LocationType,
		MobileLocationNote: r.MobileLocationNote,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *bookingModels.BookingResponse {
	return bookingModels.FromDomainBooking(resp.Booking)
}
