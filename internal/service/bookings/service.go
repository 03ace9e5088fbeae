package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
	bookingRepo "github.com/strandly/booking-service/internal/infra/storage/booking"
	"github.com/strandly/booking-service/internal/service/bookings/models"
)

// actorRole сторона бронирования, от имени которой действует пользователь
type actorRole int

const (
	roleNone actorRole = iota
	roleClient
	roleStylist
)

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	bookingRepo  BookingRepository
	stylistRepo  StylistRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	stylistRepo StylistRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		stylistRepo:  stylistRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно только участникам: клиенту или владельцу профиля стилиста
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, role, err := s.getBookingWithRole(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if role == roleNone {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrForbidden
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Пользователь видит бронирования, где он клиент или стилист
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, domain.UserBookingsFilter{
		UserID:     req.UserID,
		Status:     domainStatus,
		ActiveOnly: req.ActiveOnly,
	})
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в новый статус
// Кто какие переходы может делать:
//   - confirmed, declined, service_complete — только стилист
//   - completed — только клиент
//   - cancelled — любая из сторон
//
// Смена статуса поднимает флаг уведомления противоположной стороне
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking=%s, user=%s, status=%s", req.BookingID, req.UserID, req.Status)

	next, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking, role, err := s.getBookingWithRole(ctx, req.BookingID, req.UserID)
	if err != nil {
		return nil, err
	}
	if role == roleNone {
		s.logger.Warn("UpdateStatus: access denied for user=%s to booking id=%s", req.UserID, req.BookingID)
		return nil, ErrForbidden
	}

	if err := checkTransitionRole(next, role); err != nil {
		s.logger.Warn("UpdateStatus: user=%s (role=%d) cannot set status=%s", req.UserID, role, next)
		return nil, err
	}

	if !booking.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking=%s",
			booking.Status, next, req.BookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
	}

	// respondedAt проставляется только для ответа стилиста на заявку
	now := s.timeProvider.Now()
	var respondedAtValue *time.Time
	if next == domain.StatusConfirmed || next == domain.StatusDeclined {
		respondedAtValue = &now
	}

	notifyClient := role == roleStylist
	notifyStylist := role == roleClient

	if err := s.bookingRepo.UpdateStatus(ctx, req.BookingID, next, respondedAtValue, notifyClient, notifyStylist); err != nil {
		s.logger.Error("UpdateStatus: repository error for booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to re-read booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - re-read error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking=%s is now %s", req.BookingID, next)
	return models.FromDomainBooking(updated), nil
}

// ProposeReschedule сохраняет предложение о переносе бронирования
func (s *Service) ProposeReschedule(ctx context.Context, req *models.ProposeRescheduleRequest) (*models.BookingResponse, error) {
	s.logger.Info("ProposeReschedule: booking=%s, user=%s, start=%s", req.BookingID, req.UserID, req.ProposedStartAt)

	if !req.ProposedStartAt.Before(req.ProposedEndAt) {
		s.logger.Warn("ProposeReschedule: proposed interval is inverted or empty")
		return nil, fmt.Errorf("%w: proposed start must be before proposed end", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	if !req.ProposedStartAt.After(now) {
		s.logger.Warn("ProposeReschedule: proposed start is in the past")
		return nil, fmt.Errorf("%w: proposed start must be in the future", ErrInvalidInput)
	}

	booking, role, err := s.getBookingWithRole(ctx, req.BookingID, req.UserID)
	if err != nil {
		return nil, err
	}
	if role == roleNone {
		s.logger.Warn("ProposeReschedule: access denied for user=%s to booking id=%s", req.UserID, req.BookingID)
		return nil, ErrForbidden
	}

	if !booking.CanBeRescheduled() {
		s.logger.Warn("ProposeReschedule: booking=%s in status %s cannot be rescheduled", req.BookingID, booking.Status)
		return nil, ErrCannotReschedule
	}

	proposal := &domain.RescheduleProposal{
		ProposedStartAt: req.ProposedStartAt,
		ProposedEndAt:   req.ProposedEndAt,
		ProposedBy:      req.UserID,
		CreatedAt:       now,
	}

	notifyClient := role == roleStylist
	notifyStylist := role == roleClient

	if err := s.bookingRepo.SetRescheduleProposal(ctx, req.BookingID, proposal, notifyClient, notifyStylist); err != nil {
		s.logger.Error("ProposeReschedule: repository error for booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: ProposeReschedule - repository error: %v", ErrInternal, err)
	}

	updated, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		s.logger.Error("ProposeReschedule: failed to re-read booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: ProposeReschedule - re-read error: %v", ErrInternal, err)
	}

	s.logger.Info("ProposeReschedule: proposal saved for booking=%s", req.BookingID)
	return models.FromDomainBooking(updated), nil
}

// RespondReschedule принимает или отклоняет предложение о переносе
// Отвечать может только противоположная автору предложения сторона.
// Принятие применяет предложенный интервал к бронированию
func (s *Service) RespondReschedule(ctx context.Context, req *models.RespondRescheduleRequest) (*models.BookingResponse, error) {
	s.logger.Info("RespondReschedule: booking=%s, user=%s, accept=%t", req.BookingID, req.UserID, req.Accept)

	booking, role, err := s.getBookingWithRole(ctx, req.BookingID, req.UserID)
	if err != nil {
		return nil, err
	}
	if role == roleNone {
		s.logger.Warn("RespondReschedule: access denied for user=%s to booking id=%s", req.UserID, req.BookingID)
		return nil, ErrForbidden
	}

	if booking.RescheduleProposal == nil {
		s.logger.Warn("RespondReschedule: booking=%s has no pending proposal", req.BookingID)
		return nil, ErrNoRescheduleProposal
	}

	if booking.RescheduleProposal.ProposedBy == req.UserID {
		s.logger.Warn("RespondReschedule: user=%s is the author of the proposal", req.UserID)
		return nil, ErrOwnProposal
	}

	var newStartAt, newEndAt *time.Time
	if req.Accept {
		newStartAt = &booking.RescheduleProposal.ProposedStartAt
		newEndAt = &booking.RescheduleProposal.ProposedEndAt
	}

	notifyClient := role == roleStylist
	notifyStylist := role == roleClient

	if err := s.bookingRepo.ResolveReschedule(ctx, req.BookingID, newStartAt, newEndAt, notifyClient, notifyStylist); err != nil {
		s.logger.Error("RespondReschedule: repository error for booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: RespondReschedule - repository error: %v", ErrInternal, err)
	}

	updated, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		s.logger.Error("RespondReschedule: failed to re-read booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: RespondReschedule - re-read error: %v", ErrInternal, err)
	}

	s.logger.Info("RespondReschedule: proposal for booking=%s resolved, accept=%t", req.BookingID, req.Accept)
	return models.FromDomainBooking(updated), nil
}

// ClearNotification сбрасывает флаг уведомления вызывающей стороны
func (s *Service) ClearNotification(ctx context.Context, bookingID, userID uuid.UUID) error {
	s.logger.Info("ClearNotification: booking=%s, user=%s", bookingID, userID)

	_, role, err := s.getBookingWithRole(ctx, bookingID, userID)
	if err != nil {
		return err
	}
	if role == roleNone {
		s.logger.Warn("ClearNotification: access denied for user=%s to booking id=%s", userID, bookingID)
		return ErrForbidden
	}

	if err := s.bookingRepo.ClearNotification(ctx, bookingID, role == roleClient); err != nil {
		s.logger.Error("ClearNotification: repository error for booking=%s: %v", bookingID, err)
		return fmt.Errorf("%w: ClearNotification - repository error: %v", ErrInternal, err)
	}

	return nil
}

// getBookingWithRole загружает бронирование и определяет роль пользователя в нём
func (s *Service) getBookingWithRole(ctx context.Context, bookingID, userID uuid.UUID) (*domain.Booking, actorRole, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getBookingWithRole: booking id=%s not found", bookingID)
			return nil, roleNone, ErrBookingNotFound
		}
		s.logger.Error("getBookingWithRole: repository error for booking id=%s: %v", bookingID, err)
		return nil, roleNone, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if booking.ClientID == userID {
		return booking, roleClient, nil
	}

	stylist, err := s.stylistRepo.GetByID(ctx, booking.StylistID)
	if err != nil {
		s.logger.Error("getBookingWithRole: failed to get stylist id=%s: %v", booking.StylistID, err)
		return nil, roleNone, fmt.Errorf("%w: failed to get stylist: %v", ErrInternal, err)
	}
	if stylist.UserID == userID {
		return booking, roleStylist, nil
	}

	return booking, roleNone, nil
}

// checkTransitionRole проверяет, что роль пользователя допускает целевой статус
func checkTransitionRole(next domain.BookingStatus, role actorRole) error {
	switch next {
	case domain.StatusConfirmed, domain.StatusDeclined, domain.StatusServiceComplete:
		if role != roleStylist {
			return ErrForbidden
		}
	case domain.StatusCompleted:
		if role != roleClient {
			return ErrForbidden
		}
	case domain.StatusCancelled:
		// Любая из сторон
	default:
		return fmt.Errorf("%w: status %s cannot be set directly", ErrInvalidTransition, next)
	}
	return nil
}
