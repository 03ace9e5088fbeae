package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID == uuid.Nil {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.StylistID == uuid.Nil {
		return fmt.Errorf("%w: stylistID is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.EndAt.IsZero() {
		return fmt.Errorf("%w: endAt is required", ErrInvalidInput)
	}

	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	if !domain.LocationType(req.LocationType).IsValid() {
		return fmt.Errorf("%w: unknown location type %q", ErrInvalidInput, req.LocationType)
	}

	return nil
}

// validateStartTime проверяет, что время начала бронирования еще не прошло
func validateStartTime(startAt, now time.Time) error {
	if !startAt.After(now) {
		return ErrStartInPast
	}
	return nil
}

// depositFor возвращает размер депозита для услуги
// Если депозит не требуется, возвращает 0.0
func depositFor(service *domain.Service) float64 {
	if !service.RequiresDeposit {
		return 0.0
	}
	return service.DepositAmount
}
