package reschedule_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/service/bookings/models"
)

// ProposeRescheduleRequest HTTP модель предложения переноса
type ProposeRescheduleRequest struct {
	ProposedStartAt time.Time `json:"proposedStartAt"`
	ProposedEndAt   time.Time `json:"proposedEndAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ProposeRescheduleRequest) ToServiceRequest(bookingID, userID uuid.UUID) *models.ProposeRescheduleRequest {
	return &models.ProposeRescheduleRequest{
		BookingID:       bookingID,
		UserID:          userID,
		ProposedStartAt: r.ProposedStartAt,
		ProposedEndAt:   r.ProposedEndAt,
	}
}

// RespondRescheduleRequest HTTP модель ответа на предложение переноса
type RespondRescheduleRequest struct {
	Accept bool `json:"accept"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RespondRescheduleRequest) ToServiceRequest(bookingID, userID uuid.UUID) *models.RespondRescheduleRequest {
	return &models.RespondRescheduleRequest{
		BookingID: bookingID,
		UserID:    userID,
		Accept:    r.Accept,
	}
}
