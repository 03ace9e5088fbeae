package create_review

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/strandly/booking-service/internal/api/handlers"
	"github.com/strandly/booking-service/internal/api/middleware"
	"github.com/strandly/booking-service/internal/service/reviews"
	"github.com/strandly/booking-service/internal/service/reviews/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotReviewable      = "отзыв на это бронирование сейчас недоступен"
	msgAlreadyReviewed    = "отзыв на это бронирование уже оставлен"
	msgInvalidReview      = "некорректные данные отзыва"
)

// CreateReviewRequest HTTP модель запроса на создание отзыва
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := uuid.Parse(vars["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/review - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/review - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.CreateReviewRequest{
		BookingID: bookingID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	// Сервис проверяет, что отзыв оставляет клиент завершенного бронирования
	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/review - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reviews.ErrForbidden):
			h.logger.Warn("POST /bookings/{id}/review - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reviews.ErrNotReviewable):
			h.logger.Warn("POST /bookings/{id}/review - Not reviewable: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgNotReviewable)

		case errors.Is(err, reviews.ErrAlreadyReviewed):
			h.logger.Warn("POST /bookings/{id}/review - Already reviewed: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgAlreadyReviewed)

		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/review - Invalid review data: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidReview)

		default:
			h.logger.Error("POST /bookings/{id}/review - Failed to create review: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/review - Review created successfully: review_id=%s, booking_id=%s, rating=%d",
		result.ID, bookingID, req.Rating)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
