package reschedule_booking

import (
	"context"

	"github.com/strandly/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	ProposeReschedule(ctx context.Context, req *models.ProposeRescheduleRequest) (*models.BookingResponse, error)
	RespondReschedule(ctx context.Context, req *models.RespondRescheduleRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
