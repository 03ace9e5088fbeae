package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/strandly/booking-service/internal/api/handlers"
	"github.com/strandly/booking-service/internal/api/middleware"
	"github.com/strandly/booking-service/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotReschedule   = "перенос недоступен в текущем статусе"
	msgNoProposal         = "нет активного предложения о переносе"
	msgOwnProposal        = "нельзя отвечать на собственное предложение"
	msgInvalidInterval    = "некорректный интервал переноса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandlePropose POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) HandlePropose(w http.ResponseWriter, r *http.Request) {
	bookingID, userID, ok := h.parseIDs(w, r, "POST /bookings/{id}/reschedule")
	if !ok {
		return
	}

	var req ProposeRescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ProposeReschedule(r.Context(), req.ToServiceRequest(bookingID, userID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrForbidden):
			h.logger.Warn("POST /bookings/{id}/reschedule - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrCannotReschedule):
			h.logger.Warn("POST /bookings/{id}/reschedule - Cannot reschedule: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid interval: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed to propose reschedule: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Reschedule proposed successfully: booking_id=%s, user_id=%s",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleRespond POST /api/v1/bookings/{bookingId}/reschedule/respond
func (h *Handler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	bookingID, userID, ok := h.parseIDs(w, r, "POST /bookings/{id}/reschedule/respond")
	if !ok {
		return
	}

	var req RespondRescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule/respond - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RespondReschedule(r.Context(), req.ToServiceRequest(bookingID, userID))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule/respond - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrForbidden):
			h.logger.Warn("POST /bookings/{id}/reschedule/respond - Access denied: booking_id=%s, user_id=%s",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrNoRescheduleProposal):
			h.logger.Warn("POST /bookings/{id}/reschedule/respond - No pending proposal: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgNoProposal)

		case errors.Is(err, bookings.ErrOwnProposal):
			h.logger.Warn("POST /bookings/{id}/reschedule/respond - Responding to own proposal: booking_id=%s, user_id=%s",
				bookingID, userID)
			handlers.RespondConflict(w, msgOwnProposal)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule/respond - Failed to respond: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule/respond - Responded successfully: booking_id=%s, user_id=%s, accept=%t",
		bookingID, userID, req.Accept)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseIDs извлекает bookingId из URL и userID из контекста
func (h *Handler) parseIDs(w http.ResponseWriter, r *http.Request, op string) (uuid.UUID, uuid.UUID, bool) {
	vars := mux.Vars(r)

	bookingID, err := uuid.Parse(vars["bookingId"])
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return uuid.Nil, uuid.Nil, false
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", op)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return uuid.Nil, uuid.Nil, false
	}

	return bookingID, userID, true
}
