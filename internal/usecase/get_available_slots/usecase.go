package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/strandly/booking-service/internal/domain"
	availabilityRepo "github.com/strandly/booking-service/internal/infra/storage/availability"
	stylistRepo "github.com/strandly/booking-service/internal/infra/storage/stylist"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	stylistRepo      StylistRepository
	availabilityRepo AvailabilityRepository
	timeProvider     TimeProvider
	defaultDays      int
	logger           Logger
}

// NewUseCase создает новый экземпляр use case.
// defaultDaysForward — горизонт из конфигурации; 0 — дефолт (14 дней)
func NewUseCase(
	stylistRepo StylistRepository,
	availabilityRepo AvailabilityRepository,
	defaultDaysForward int,
	logger Logger,
) *UseCase {
	if defaultDaysForward <= 0 {
		defaultDaysForward = domain.DefaultDaysForward
	}

	return &UseCase{
		stylistRepo:      stylistRepo,
		availabilityRepo: availabilityRepo,
		timeProvider:     &RealTimeProvider{},
		defaultDays:      defaultDaysForward,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: stylist=%s, service=%v, days=%d",
		req.StylistID, req.ServiceID, req.DaysForward)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование стилиста
	if _, err := uc.stylistRepo.GetByID(ctx, req.StylistID); err != nil {
		if errors.Is(err, stylistRepo.ErrStylistNotFound) {
			uc.logger.Warn("GetAvailableSlots: stylist id=%s not found", req.StylistID)
			return nil, ErrStylistNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get stylist id=%s: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to get stylist: %v", ErrInternal, err)
	}

	// 4. Определяем длительность услуги
	duration := domain.DefaultServiceDurationMinutes
	if req.ServiceID != nil {
		service, err := uc.stylistRepo.GetService(ctx, req.StylistID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, stylistRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%s not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		duration = service.EffectiveDurationMinutes()
	}

	// 5. Определяем горизонт
	days := req.DaysForward
	if days == 0 {
		days = uc.defaultDays
	}

	// 6. Получаем недельное расписание стилиста
	// Отсутствующее или нечитаемое расписание заменяется на "все дни закрыты":
	// пустой результат для UI — нормальное состояние "нет доступности", не ошибка
	availability, err := uc.availabilityRepo.GetByStylistID(ctx, req.StylistID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Info("GetAvailableSlots: no availability stored for stylist=%s, using all-closed default", req.StylistID)
		} else {
			uc.logger.Error("GetAvailableSlots: failed to get availability for stylist=%s, using all-closed default: %v", req.StylistID, err)
		}
		availability = domain.AllClosed(req.StylistID)
	}

	// 7. Генерируем слоты
	slots := GenerateSlots(availability, duration, days, now)

	// 8. Группируем по датам для отображения
	groups := GroupSlotsByDate(slots)

	uc.logger.Info("GetAvailableSlots: generated %d slots in %d day groups for stylist=%s",
		len(slots), len(groups), req.StylistID)

	return &Response{
		StylistID:       req.StylistID,
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		DaysForward:     days,
		Slots:           slots,
		Groups:          groups,
	}, nil
}
