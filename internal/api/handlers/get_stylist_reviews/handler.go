package get_stylist_reviews

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/strandly/booking-service/internal/api/handlers"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
)

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

// Handle GET /api/v1/stylists/{stylistId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stylistID, err := uuid.Parse(vars["stylistId"])
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/reviews - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	result, err := h.service.ListByStylist(r.Context(), stylistID)
	if err != nil {
		h.logger.Error("GET /stylists/{id}/reviews - Failed to list reviews: stylist_id=%s, error=%v", stylistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stylists/{id}/reviews - Reviews retrieved successfully: stylist_id=%s, count=%d",
		stylistID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
