package get_availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	Get(ctx context.Context, stylistID uuid.UUID) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
