package get_stylist_reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/service/reviews/models"
)

type ReviewService interface {
	ListByStylist(ctx context.Context, stylistID uuid.UUID) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
