package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandly/booking-service/internal/domain"
	"github.com/strandly/booking-service/pkg/types"
)

func TestUpdateAvailabilityRequest_ToDomain(t *testing.T) {
	req := &UpdateAvailabilityRequest{
		StylistID:              uuid.New(),
		SlotGranularityMinutes: 30,
		WeeklyRules: WeeklyRules{
			"mon": {{Start: "09:00", End: "17:00"}},
			// Верхняя граница слайдера расписания должна сохраняться
			"fri": {{Start: "20:00", End: "24:00"}},
		},
	}

	av, err := req.ToDomain()
	require.NoError(t, err)

	require.Len(t, av.Rules[domain.Monday], 1)
	require.Len(t, av.Rules[domain.Friday], 1)
	assert.Equal(t, types.EndOfDay, av.Rules[domain.Friday][0].End)
	assert.Empty(t, av.Rules[domain.Sunday])
}

func TestUpdateAvailabilityRequest_ToDomain_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		rules WeeklyRules
	}{
		{"unknown weekday key", WeeklyRules{"funday": {{Start: "09:00", End: "17:00"}}}},
		{"malformed start", WeeklyRules{"mon": {{Start: "garbage", End: "17:00"}}}},
		{"hour past end of day", WeeklyRules{"mon": {{Start: "09:00", End: "24:30"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &UpdateAvailabilityRequest{
				StylistID:   uuid.New(),
				WeeklyRules: tt.rules,
			}
			_, err := req.ToDomain()
			assert.Error(t, err)
		})
	}
}

func TestFromDomain_DecimalBounds(t *testing.T) {
	av := domain.AllClosed(uuid.New())
	av.Rules[domain.Friday] = []domain.OpenBlock{
		{Start: "20:00", End: types.EndOfDay},
	}

	resp := FromDomain(av)
	require.Len(t, resp.WeeklyRules["fri"], 1)
	block := resp.WeeklyRules["fri"][0]
	assert.Equal(t, 20.0, block.StartDecimal)
	assert.Equal(t, 24.0, block.EndDecimal)
}
