package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
)

// StylistRepository интерфейс репозитория стилистов
type StylistRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Stylist, error)
	GetService(ctx context.Context, stylistID, serviceID uuid.UUID) (*domain.Service, error)
}

// AvailabilityRepository интерфейс репозитория недельного расписания
type AvailabilityRepository interface {
	GetByStylistID(ctx context.Context, stylistID uuid.UUID) (*domain.WeeklyAvailability, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
