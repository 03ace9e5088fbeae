package update_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/strandly/booking-service/internal/api/handlers"
	"github.com/strandly/booking-service/internal/api/middleware"
	"github.com/strandly/booking-service/internal/service/availability"
)

const (
	msgInvalidStylistID   = "некорректный ID стилиста"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgStylistNotFound    = "стилист не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidRules       = "некорректное расписание"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/stylists/{stylistId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stylistID, err := uuid.Parse(vars["stylistId"])
	if err != nil {
		h.logger.Warn("PUT /stylists/{id}/availability - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /stylists/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /stylists/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем расписание (сервис сам проверит владельца профиля)
	result, err := h.service.Update(r.Context(), req.ToServiceRequest(stylistID, userID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrStylistNotFound):
			h.logger.Warn("PUT /stylists/{id}/availability - Stylist not found: stylist_id=%s", stylistID)
			handlers.RespondNotFound(w, msgStylistNotFound)

		case errors.Is(err, availability.ErrForbidden):
			h.logger.Warn("PUT /stylists/{id}/availability - Access denied: stylist_id=%s, user_id=%s", stylistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /stylists/{id}/availability - Invalid rules: stylist_id=%s, error=%v", stylistID, err)
			handlers.RespondBadRequest(w, msgInvalidRules)

		default:
			h.logger.Error("PUT /stylists/{id}/availability - Failed to update availability: stylist_id=%s, error=%v",
				stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /stylists/{id}/availability - Availability updated successfully: stylist_id=%s, user_id=%s",
		stylistID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
