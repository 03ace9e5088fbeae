package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StylistID == uuid.Nil {
		return fmt.Errorf("%w: stylistID is required", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID must not be empty", ErrInvalidInput)
	}

	if req.DaysForward < 0 {
		return fmt.Errorf("%w: daysForward must be positive", ErrInvalidInput)
	}

	if req.DaysForward > domain.MaxDaysForward {
		return fmt.Errorf("%w: daysForward must not exceed %d", ErrInvalidInput, domain.MaxDaysForward)
	}

	return nil
}
