package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
	stylistRepo "github.com/strandly/booking-service/internal/infra/storage/stylist"
	"github.com/strandly/booking-service/internal/integrations/profileservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	stylistRepo   StylistRepository
	profileClient ProfileServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stylistRepo StylistRepository,
	profileClient ProfileServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		stylistRepo:   stylistRepo,
		profileClient: profileClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Интервал записывается ровно в том виде, в котором клиент выбрал слот.
// Пересечения с другими бронированиями на этом этапе не проверяются:
// стилист подтверждает или отклоняет заявку вручную
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s, stylist=%s, service=%s, startAt=%s",
		req.ClientID, req.StylistID, req.ServiceID, req.StartAt.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что время начала еще не прошло
	if err := validateStartTime(req.StartAt, now); err != nil {
		uc.logger.Warn("CreateBooking: start time %s is in the past", req.StartAt.Format(domain.DateTimeFormat))
		return nil, err
	}

	// 4. Получаем стилиста
	stylist, err := uc.stylistRepo.GetByID(ctx, req.StylistID)
	if err != nil {
		if errors.Is(err, stylistRepo.ErrStylistNotFound) {
			uc.logger.Warn("CreateBooking: stylist id=%s not found", req.StylistID)
			return nil, ErrStylistNotFound
		}
		uc.logger.Error("CreateBooking: failed to get stylist id=%s: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to get stylist: %v", ErrInternal, err)
	}

	// 5. Получаем услугу
	service, err := uc.stylistRepo.GetService(ctx, req.StylistID, req.ServiceID)
	if err != nil {
		if errors.Is(err, stylistRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found for stylist id=%s", req.ServiceID, req.StylistID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 6. Получаем имя клиента из ProfileService с graceful degradation:
	// при недоступности сервиса бронирование создается с пустым именем
	clientName := ""
	profile, err := uc.profileClient.GetProfileWithGracefulDegradation(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, profileservice.ErrServiceDegraded) {
			uc.logger.Warn("CreateBooking: profile service degraded, creating booking without client name")
		} else {
			uc.logger.Warn("CreateBooking: profile for client id=%s not found: %v", req.ClientID, err)
		}
	} else {
		clientName = profile.DisplayName
	}

	// 7. Создаем бронирование с денормализацией данных услуги и участников
	booking := &domain.Booking{
		ID:        uuid.New(),
		ClientID:  req.ClientID,
		StylistID: req.StylistID,
		ServiceID: req.ServiceID,

		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Status:      domain.StatusRequested,
		RequestedAt: now,

		LocationType:       domain.LocationType(req.LocationType),
		MobileLocationNote: req.MobileLocationNote,

		ClientName:   clientName,
		StylistName:  stylist.Name,
		ServiceName:  service.Name,
		ServicePrice: service.Price,

		DepositAmount: depositFor(service),
		TotalAmount:   service.Price,

		// Новая заявка всегда зажигает индикатор на стороне стилиста
		StylistHasNotification: true,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	return &Response{Booking: created}, nil
}
