package get_available_slots

import (
	"time"

	"github.com/strandly/booking-service/internal/domain"
	getAvailableSlots "github.com/strandly/booking-service/internal/usecase/get_available_slots"
	"github.com/strandly/booking-service/pkg/ptr"
)

// AvailableSlot один бронируемый слот
type AvailableSlot struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Label   string    `json:"label"`
}

// SlotGroup слоты одной календарной даты
type SlotGroup struct {
	Date  string          `json:"date"`
	Slots []AvailableSlot `json:"slots"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	StylistID       string      `json:"stylistId"`
	ServiceID       *string     `json:"serviceId,omitempty"`
	DurationMinutes int         `json:"durationMinutes"`
	DaysForward     int         `json:"daysForward"`
	Groups          []SlotGroup `json:"groups"`
	Total           int         `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	groups := make([]SlotGroup, len(resp.Groups))
	for i, g := range resp.Groups {
		groups[i] = SlotGroup{
			Date:  g.Date,
			Slots: fromDomainSlots(g.Slots),
		}
	}

	out := &AvailableSlotsResponse{
		StylistID:       resp.StylistID.String(),
		DurationMinutes: resp.DurationMinutes,
		DaysForward:     resp.DaysForward,
		Groups:          groups,
		Total:           len(resp.Slots),
	}
	if resp.ServiceID != nil {
		out.ServiceID = ptr.Ptr(resp.ServiceID.String())
	}

	return out
}

func fromDomainSlots(slots []domain.BookableSlot) []AvailableSlot {
	out := make([]AvailableSlot, len(slots))
	for i, s := range slots {
		out[i] = AvailableSlot{
			StartAt: s.StartAt,
			EndAt:   s.EndAt,
			Label:   s.Label,
		}
	}
	return out
}
