package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/strandly/booking-service/internal/api/handlers"
	getAvailableSlots "github.com/strandly/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidStylistID = "некорректный ID стилиста"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDays      = "некорректное значение days"
	msgStylistNotFound  = "стилист не найден"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/available-slots
// Query params: serviceId (optional), days (optional, default 14)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем stylistId из URL
	stylistID, err := uuid.Parse(vars["stylistId"])
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/available-slots - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	useCaseReq := &getAvailableSlots.Request{
		StylistID: stylistID,
	}

	// serviceId опционален: без него слоты считаются по длительности по умолчанию
	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		serviceID, err := uuid.Parse(serviceIDStr)
		if err != nil {
			h.logger.Warn("GET /stylists/{id}/available-slots - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		useCaseReq.ServiceID = &serviceID
	}

	// days опционален
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			h.logger.Warn("GET /stylists/{id}/available-slots - Invalid days: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		useCaseReq.DaysForward = days
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /stylists/{id}/available-slots - Invalid input: stylist_id=%s, error=%v", stylistID, err)
			handlers.RespondBadRequest(w, msgInvalidDays)

		case errors.Is(err, getAvailableSlots.ErrStylistNotFound):
			h.logger.Warn("GET /stylists/{id}/available-slots - Stylist not found: stylist_id=%s", stylistID)
			handlers.RespondNotFound(w, msgStylistNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /stylists/{id}/available-slots - Service not found: stylist_id=%s", stylistID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /stylists/{id}/available-slots - Failed to get slots: stylist_id=%s, error=%v", stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /stylists/{id}/available-slots - Slots retrieved successfully: stylist_id=%s, slots_count=%d",
		stylistID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
