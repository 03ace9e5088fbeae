package update_availability

import (
	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/service/availability/models"
)

// UpdateAvailabilityRequest HTTP модель запроса на замену расписания
type UpdateAvailabilityRequest struct {
	SlotGranularityMinutes int                `json:"slotGranularityMinutes"`
	WeeklyRules            models.WeeklyRules `json:"weeklyRules"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(stylistID, userID uuid.UUID) *models.UpdateAvailabilityRequest {
	return &models.UpdateAvailabilityRequest{
		StylistID:              stylistID,
		UserID:                 userID,
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		WeeklyRules:            r.WeeklyRules,
	}
}
