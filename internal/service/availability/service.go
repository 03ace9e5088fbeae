package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
	availabilityRepo "github.com/strandly/booking-service/internal/infra/storage/availability"
	stylistRepo "github.com/strandly/booking-service/internal/infra/storage/stylist"
	"github.com/strandly/booking-service/internal/service/availability/models"
)

// Service сервис для работы с недельным расписанием стилистов
type Service struct {
	availabilityRepo AvailabilityRepository
	stylistRepo      StylistRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	stylistRepo StylistRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		stylistRepo:      stylistRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Get возвращает расписание стилиста
// Отсутствующее расписание — не ошибка: редактор получает пустую неделю
func (s *Service) Get(ctx context.Context, stylistID uuid.UUID) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: stylist=%s", stylistID)

	if _, err := s.stylistRepo.GetByID(ctx, stylistID); err != nil {
		if errors.Is(err, stylistRepo.ErrStylistNotFound) {
			s.logger.Warn("GetAvailability: stylist id=%s not found", stylistID)
			return nil, ErrStylistNotFound
		}
		s.logger.Error("GetAvailability: failed to get stylist id=%s: %v", stylistID, err)
		return nil, fmt.Errorf("%w: failed to get stylist: %v", ErrInternal, err)
	}

	av, err := s.availabilityRepo.GetByStylistID(ctx, stylistID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Info("GetAvailability: no availability stored for stylist=%s, returning all-closed week", stylistID)
			return models.FromDomain(domain.AllClosed(stylistID)), nil
		}
		s.logger.Error("GetAvailability: repository error for stylist=%s: %v", stylistID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	return models.FromDomain(av), nil
}

// Update полностью заменяет расписание стилиста
// Доступно только владельцу профиля стилиста
func (s *Service) Update(ctx context.Context, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("UpdateAvailability: stylist=%s, user=%s", req.StylistID, req.UserID)

	stylist, err := s.stylistRepo.GetByID(ctx, req.StylistID)
	if err != nil {
		if errors.Is(err, stylistRepo.ErrStylistNotFound) {
			s.logger.Warn("UpdateAvailability: stylist id=%s not found", req.StylistID)
			return nil, ErrStylistNotFound
		}
		s.logger.Error("UpdateAvailability: failed to get stylist id=%s: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to get stylist: %v", ErrInternal, err)
	}

	if stylist.UserID != req.UserID {
		s.logger.Warn("UpdateAvailability: user=%s is not the owner of stylist=%s", req.UserID, req.StylistID)
		return nil, ErrForbidden
	}

	av, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("UpdateAvailability: invalid rules for stylist=%s: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Замена расписания — удаление + вставка, поэтому в транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.availabilityRepo.Replace(txCtx, av)
	})
	if err != nil {
		s.logger.Error("UpdateAvailability: failed to replace availability for stylist=%s: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to replace availability: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateAvailability: availability replaced for stylist=%s", req.StylistID)
	return models.FromDomain(av), nil
}
