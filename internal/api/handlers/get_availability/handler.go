package get_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/strandly/booking-service/internal/api/handlers"
	"github.com/strandly/booking-service/internal/service/availability"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
	msgStylistNotFound  = "стилист не найден"
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

// Handle GET /api/v1/stylists/{stylistId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stylistID, err := uuid.Parse(vars["stylistId"])
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/availability - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	// Сервис возвращает полностью закрытую неделю, если расписание еще не задано
	result, err := h.service.Get(r.Context(), stylistID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrStylistNotFound):
			h.logger.Warn("GET /stylists/{id}/availability - Stylist not found: stylist_id=%s", stylistID)
			handlers.RespondNotFound(w, msgStylistNotFound)

		default:
			h.logger.Error("GET /stylists/{id}/availability - Failed to get availability: stylist_id=%s, error=%v",
				stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stylists/{id}/availability - Availability retrieved successfully: stylist_id=%s", stylistID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
