package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
	bookingRepo "github.com/strandly/booking-service/internal/infra/storage/booking"
	reviewRepo "github.com/strandly/booking-service/internal/infra/storage/review"
	stylistRepo "github.com/strandly/booking-service/internal/infra/storage/stylist"
	"github.com/strandly/booking-service/internal/service/reviews/models"
)

// Service сервис для работы с отзывами
type Service struct {
	reviewRepo  ReviewRepository
	bookingRepo BookingRepository
	stylistRepo StylistRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	bookingRepo BookingRepository,
	stylistRepo StylistRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		stylistRepo: stylistRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает отзыв на завершённое бронирование
// Отзыв, привязка к бронированию и пересчёт агрегата рейтинга стилиста
// выполняются в одной сериализуемой транзакции
func (s *Service) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("CreateReview: booking=%s, user=%s, rating=%d", req.BookingID, req.UserID, req.Rating)

	if !domain.IsValidRating(req.Rating) {
		s.logger.Warn("CreateReview: invalid rating=%d", req.Rating)
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if len(req.Comment) > domain.MaxCommentLength {
		s.logger.Warn("CreateReview: comment too long (%d chars)", len(req.Comment))
		return nil, fmt.Errorf("%w: comment must not exceed %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	var created *domain.Review

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.ClientID != req.UserID {
			return ErrForbidden
		}

		if !booking.CanBeReviewed() {
			return ErrNotReviewable
		}

		review := &domain.Review{
			ID:         uuid.New(),
			BookingID:  booking.ID,
			ClientID:   booking.ClientID,
			ClientName: booking.ClientName,
			StylistID:  booking.StylistID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		}

		created, err = s.reviewRepo.Create(txCtx, review)
		if err != nil {
			if errors.Is(err, reviewRepo.ErrAlreadyReviewed) {
				return ErrAlreadyReviewed
			}
			return fmt.Errorf("%w: failed to create review: %v", ErrInternal, err)
		}

		if err := s.bookingRepo.SetReviewID(txCtx, booking.ID, created.ID); err != nil {
			return fmt.Errorf("%w: failed to link review to booking: %v", ErrInternal, err)
		}

		stylist, err := s.stylistRepo.GetByID(txCtx, booking.StylistID)
		if err != nil {
			return fmt.Errorf("%w: failed to get stylist: %v", ErrInternal, err)
		}

		stylist.ApplyRating(req.Rating)

		if err := s.stylistRepo.UpdateRating(txCtx, stylist.ID, stylist.RatingAvg, stylist.RatingCount); err != nil {
			return fmt.Errorf("%w: failed to update stylist rating: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		s.logger.Warn("CreateReview: failed for booking=%s: %v", req.BookingID, err)
		return nil, err
	}

	s.logger.Info("CreateReview: review id=%s created for booking=%s", created.ID, req.BookingID)
	return models.FromDomainReview(created), nil
}

// ListByStylist возвращает отзывы стилиста, новые первыми
func (s *Service) ListByStylist(ctx context.Context, stylistID uuid.UUID) (*models.ReviewListResponse, error) {
	s.logger.Info("ListReviews: stylist=%s", stylistID)

	if _, err := s.stylistRepo.GetByID(ctx, stylistID); err != nil {
		if errors.Is(err, stylistRepo.ErrStylistNotFound) {
			s.logger.Warn("ListReviews: stylist id=%s not found", stylistID)
			return nil, fmt.Errorf("%w: stylist not found", ErrInvalidInput)
		}
		s.logger.Error("ListReviews: failed to get stylist id=%s: %v", stylistID, err)
		return nil, fmt.Errorf("%w: failed to get stylist: %v", ErrInternal, err)
	}

	reviews, err := s.reviewRepo.ListByStylist(ctx, stylistID)
	if err != nil {
		s.logger.Error("ListReviews: repository error for stylist=%s: %v", stylistID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReviewList(reviews), nil
}
