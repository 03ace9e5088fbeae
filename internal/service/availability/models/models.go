package models

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
	"github.com/strandly/booking-service/pkg/timedec"
	"github.com/strandly/booking-service/pkg/types"
)

// OpenBlock интервал открытых часов в формате "HH:MM"
// Десятичные поля дублируют границы для range slider редактора расписания
type OpenBlock struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	StartDecimal float64 `json:"startDecimal,omitempty"`
	EndDecimal   float64 `json:"endDecimal,omitempty"`
}

// WeeklyRules недельное расписание: ключи "sun".."sat", день без блоков закрыт
type WeeklyRules map[string][]OpenBlock

// AvailabilityResponse ответ с расписанием стилиста
type AvailabilityResponse struct {
	StylistID              string      `json:"stylistId"`
	SlotGranularityMinutes int         `json:"slotGranularityMinutes"`
	WeeklyRules            WeeklyRules `json:"weeklyRules"`
}

// UpdateAvailabilityRequest запрос на полную замену расписания
type UpdateAvailabilityRequest struct {
	StylistID              uuid.UUID
	UserID                 uuid.UUID
	SlotGranularityMinutes int
	WeeklyRules            WeeklyRules
}

// FromDomain конвертирует доменное расписание в ответ сервиса
func FromDomain(av *domain.WeeklyAvailability) *AvailabilityResponse {
	rules := make(WeeklyRules, 7)
	for day := domain.Sunday; day <= domain.Saturday; day++ {
		blocks := av.Rules[day]
		out := make([]OpenBlock, len(blocks))
		for i, b := range blocks {
			out[i] = OpenBlock{
				Start:        b.Start.String(),
				End:          b.End.String(),
				StartDecimal: timedec.TimeToDecimal(b.Start.String()),
				EndDecimal:   timedec.TimeToDecimal(b.End.String()),
			}
		}
		rules[day.String()] = out
	}

	return &AvailabilityResponse{
		StylistID:              av.StylistID.String(),
		SlotGranularityMinutes: av.SlotGranularityMinutes,
		WeeklyRules:            rules,
	}
}

// ToDomain конвертирует запрос в доменное расписание с валидацией
// Неизвестные ключи дней и невалидные времена отклоняются на записи:
// генератор терпим к мусору на чтении, но новый мусор в хранилище не допускается
func (r *UpdateAvailabilityRequest) ToDomain() (*domain.WeeklyAvailability, error) {
	av := domain.AllClosed(r.StylistID)
	if r.SlotGranularityMinutes > 0 {
		av.SlotGranularityMinutes = r.SlotGranularityMinutes
	}

	for key, blocks := range r.WeeklyRules {
		day, ok := domain.ParseWeekday(key)
		if !ok {
			return nil, fmt.Errorf("unknown weekday key %q", key)
		}

		parsed := make([]domain.OpenBlock, 0, len(blocks))
		for _, b := range blocks {
			start, err := types.NewTimeStringFromString(b.Start)
			if err != nil {
				return nil, fmt.Errorf("day %q: %v", key, err)
			}
			end, err := types.NewTimeStringFromString(b.End)
			if err != nil {
				return nil, fmt.Errorf("day %q: %v", key, err)
			}
			parsed = append(parsed, domain.OpenBlock{Start: start, End: end})
		}
		av.Rules[day] = parsed
	}

	return av, nil
}
