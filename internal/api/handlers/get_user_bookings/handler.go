package get_user_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/strandly/booking-service/internal/api/handlers"
	"github.com/strandly/booking-service/internal/api/middleware"
	"github.com/strandly/booking-service/internal/service/bookings"
	"github.com/strandly/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidUserID     = "некорректный ID пользователя"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgInvalidStatus     = "некорректный статус"
	msgInvalidActiveOnly = "некорректное значение activeOnly"
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

// Handle GET /api/v1/users/{userId}/bookings
// Без параметров отдаёт полную историю во всех статусах.
// Query params: status (optional), activeOnly (optional, default false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	userID, err := uuid.Parse(vars["userId"])
	if err != nil {
		h.logger.Warn("GET /users/{userId}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Историю бронирований можно смотреть только свою
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if callerID != userID {
		h.logger.Warn("GET /users/{userId}/bookings - Access denied: user_id=%s, caller_id=%s", userID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	serviceReq := &models.GetUserBookingsRequest{
		UserID: userID,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		serviceReq.Status = &status
	}

	if activeStr := r.URL.Query().Get("activeOnly"); activeStr != "" {
		activeOnly, err := strconv.ParseBool(activeStr)
		if err != nil {
			h.logger.Warn("GET /users/{userId}/bookings - Invalid activeOnly: %v", err)
			handlers.RespondBadRequest(w, msgInvalidActiveOnly)
			return
		}
		serviceReq.ActiveOnly = activeOnly
	}

	result, err := h.service.GetUserBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /users/{userId}/bookings - Invalid status filter: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{userId}/bookings - Failed to get bookings: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{userId}/bookings - Bookings retrieved successfully: user_id=%s, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
