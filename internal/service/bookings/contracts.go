package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, respondedAt *time.Time, notifyClient, notifyStylist bool) error
	SetRescheduleProposal(ctx context.Context, id uuid.UUID, proposal *domain.RescheduleProposal, notifyClient, notifyStylist bool) error
	ResolveReschedule(ctx context.Context, id uuid.UUID, newStartAt, newEndAt *time.Time, notifyClient, notifyStylist bool) error
	ClearNotification(ctx context.Context, id uuid.UUID, clientSide bool) error
}

// StylistRepository интерфейс репозитория стилистов
// Нужен для определения, какой стороной бронирования является пользователь
type StylistRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Stylist, error)
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
