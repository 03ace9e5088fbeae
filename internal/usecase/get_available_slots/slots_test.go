package get_available_slots

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandly/booking-service/internal/domain"
	"github.com/strandly/booking-service/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func availabilityWith(t *testing.T, day domain.Weekday, blocks ...[2]string) *domain.WeeklyAvailability {
	t.Helper()
	av := domain.AllClosed(uuid.New())
	for _, b := range blocks {
		av.Rules[day] = append(av.Rules[day], domain.OpenBlock{
			Start: mustTime(t, b[0]),
			End:   mustTime(t, b[1]),
		})
	}
	return av
}

func TestGenerateSlots_SaturdayOnly(t *testing.T) {
	// Открыта только суббота 09:00-17:00, услуга 240 минут.
	// Валидные старты: 09:00..13:00 с шагом 30 минут = 9 слотов на субботу
	av := availabilityWith(t, domain.Saturday, [2]string{"09:00", "17:00"})

	// 2 июня 2025 — понедельник; за 14 дней попадают две субботы (7 и 14 июня)
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	slots := GenerateSlots(av, 240, 14, now)
	require.Len(t, slots, 18)

	firstSaturday := slots[:9]
	assert.Equal(t, time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC), firstSaturday[0].StartAt)
	assert.Equal(t, time.Date(2025, 6, 7, 13, 0, 0, 0, time.UTC), firstSaturday[0].EndAt)
	assert.Equal(t, time.Date(2025, 6, 7, 13, 0, 0, 0, time.UTC), firstSaturday[8].StartAt)

	for _, slot := range slots {
		assert.Equal(t, time.Saturday, slot.StartAt.Weekday())
		assert.Equal(t, 240, slot.DurationMinutes())
	}
}

func TestGenerateSlots_GridAlignedToBlockStart(t *testing.T) {
	// Блок 09:10-10:00, услуга 30 минут: кандидаты 09:10, 09:40, ...
	// но 09:40+30 = 10:10 > 10:00, поэтому остаётся ровно один слот
	av := availabilityWith(t, domain.Monday, [2]string{"09:10", "10:00"})

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) // воскресенье

	slots := GenerateSlots(av, 30, 2, now)
	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 10, 0, 0, time.UTC), slots[0].StartAt)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 40, 0, 0, time.UTC), slots[0].EndAt)
}

func TestGenerateSlots_BlockEndingAtMidnight(t *testing.T) {
	// Вечерний блок 20:00-24:00 (максимум слайдера расписания), услуга 60 минут.
	// Старты 20:00..23:00 с шагом 30 минут = 7 слотов, последний кончается
	// ровно в полночь следующего дня
	av := availabilityWith(t, domain.Monday, [2]string{"20:00", "24:00"})

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) // воскресенье

	slots := GenerateSlots(av, 60, 2, now)
	require.Len(t, slots, 7)
	assert.Equal(t, time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC), slots[0].StartAt)
	assert.Equal(t, time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC), slots[6].StartAt)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), slots[6].EndAt)
}

func TestGenerateSlots_DurationExceedsEveryBlock(t *testing.T) {
	av := availabilityWith(t, domain.Monday, [2]string{"09:00", "10:00"})
	av.Rules[domain.Wednesday] = []domain.OpenBlock{
		{Start: mustTime(t, "14:00"), End: mustTime(t, "15:30")},
	}

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	slots := GenerateSlots(av, 240, 14, now)
	assert.Empty(t, slots)
}

func TestGenerateSlots_SkipsPastToday(t *testing.T) {
	// Сегодня среда, блок 09:00-17:00, сейчас 14:00.
	// Первый слот сегодня — первый кандидат сетки строго после now: 14:30
	av := availabilityWith(t, domain.Wednesday, [2]string{"09:00", "17:00"})

	now := time.Date(2025, 6, 4, 14, 0, 0, 0, time.UTC) // среда

	slots := GenerateSlots(av, 60, 1, now)
	require.NotEmpty(t, slots)
	assert.Equal(t, time.Date(2025, 6, 4, 14, 30, 0, 0, time.UTC), slots[0].StartAt)

	for _, slot := range slots {
		assert.True(t, slot.StartAt.After(now), "slot %s is not after now", slot.StartAt)
	}
}

func TestGenerateSlots_ExactlyNowIsExcluded(t *testing.T) {
	av := availabilityWith(t, domain.Wednesday, [2]string{"14:00", "17:00"})

	// now совпадает с кандидатом сетки: слот на 14:00 не эмитится
	now := time.Date(2025, 6, 4, 14, 0, 0, 0, time.UTC)

	slots := GenerateSlots(av, 60, 1, now)
	require.NotEmpty(t, slots)
	assert.Equal(t, time.Date(2025, 6, 4, 14, 30, 0, 0, time.UTC), slots[0].StartAt)
}

func TestGenerateSlots_InvertedBlockYieldsNothing(t *testing.T) {
	av := availabilityWith(t, domain.Monday, [2]string{"17:00", "09:00"})

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	slots := GenerateSlots(av, 60, 7, now)
	assert.Empty(t, slots)
}

func TestGenerateSlots_ZeroLengthBlockYieldsNothing(t *testing.T) {
	av := availabilityWith(t, domain.Monday, [2]string{"09:00", "09:00"})

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	slots := GenerateSlots(av, 60, 7, now)
	assert.Empty(t, slots)
}

func TestGenerateSlots_MultipleBlocksSameDay(t *testing.T) {
	av := availabilityWith(t, domain.Tuesday,
		[2]string{"09:00", "11:00"},
		[2]string{"14:00", "16:00"},
	)

	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // понедельник

	slots := GenerateSlots(av, 60, 2, now)
	// Каждый блок 2 часа: старты 09:00, 09:30, 10:00 и 14:00, 14:30, 15:00
	require.Len(t, slots, 6)
	assert.Equal(t, time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC), slots[0].StartAt)
	assert.Equal(t, time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC), slots[3].StartAt)
}

func TestGenerateSlots_StrideIsIndependentOfDuration(t *testing.T) {
	av := availabilityWith(t, domain.Monday, [2]string{"09:00", "12:00"})

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	slots := GenerateSlots(av, 90, 2, now)
	require.NotEmpty(t, slots)

	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30*time.Minute, slots[i].StartAt.Sub(slots[i-1].StartAt))
	}
}

func TestGenerateSlots_NonPositiveDurationFallsBack(t *testing.T) {
	av := availabilityWith(t, domain.Monday, [2]string{"09:00", "11:00"})

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	slots := GenerateSlots(av, 0, 2, now)
	require.NotEmpty(t, slots)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, slots[0].DurationMinutes())
}

func TestGenerateSlots_AllClosedWeek(t *testing.T) {
	av := domain.AllClosed(uuid.New())

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	slots := GenerateSlots(av, 60, 14, now)
	assert.Empty(t, slots)
}

func TestGenerateSlots_TimezoneComesFromNow(t *testing.T) {
	av := availabilityWith(t, domain.Monday, [2]string{"09:00", "10:00"})

	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)

	slots := GenerateSlots(av, 60, 2, now)
	require.Len(t, slots, 1)
	assert.Equal(t, loc, slots[0].StartAt.Location())
	assert.Equal(t, 9, slots[0].StartAt.Hour())
}

func TestGenerateSlots_LabelFormat(t *testing.T) {
	av := availabilityWith(t, domain.Friday, [2]string{"15:00", "16:30"})

	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	slots := GenerateSlots(av, 60, 7, now)
	require.NotEmpty(t, slots)
	// 6 июня 2025 — пятница
	assert.Equal(t, "Fri, Jun 6 • 3:00 PM", slots[0].Label)
}

func TestGroupSlotsByDate(t *testing.T) {
	av := availabilityWith(t, domain.Saturday, [2]string{"09:00", "11:00"})
	av.Rules[domain.Sunday] = []domain.OpenBlock{
		{Start: mustTime(t, "10:00"), End: mustTime(t, "12:00")},
	}

	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // понедельник

	slots := GenerateSlots(av, 60, 7, now)
	groups := GroupSlotsByDate(slots)

	require.Len(t, groups, 2)
	// Суббота 7 июня раньше воскресенья 8 июня
	assert.Equal(t, "2025-06-07", groups[0].Date)
	assert.Equal(t, "2025-06-08", groups[1].Date)

	for _, g := range groups {
		require.NotEmpty(t, g.Slots)
		for _, slot := range g.Slots {
			assert.Equal(t, g.Date, slot.DateKey())
		}
	}
}

func TestGroupSlotsByDate_Empty(t *testing.T) {
	groups := GroupSlotsByDate(nil)
	assert.Empty(t, groups)
}
