package clear_notification

import (
	"context"

	"github.com/google/uuid"
)

type BookingService interface {
	ClearNotification(ctx context.Context, bookingID, userID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
