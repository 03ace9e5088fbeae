package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekday_String(t *testing.T) {
	assert.Equal(t, "sun", Sunday.String())
	assert.Equal(t, "wed", Wednesday.String())
	assert.Equal(t, "sat", Saturday.String())
	assert.Equal(t, "unknown", Weekday(7).String())
	assert.Equal(t, "unknown", Weekday(-1).String())
}

func TestWeekdayOf(t *testing.T) {
	// 7 июня 2025 — суббота
	assert.Equal(t, Saturday, WeekdayOf(time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)))
	// 9 июня 2025 — понедельник
	assert.Equal(t, Monday, WeekdayOf(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)))
}

func TestParseWeekday(t *testing.T) {
	day, ok := ParseWeekday("fri")
	require.True(t, ok)
	assert.Equal(t, Friday, day)

	_, ok = ParseWeekday("friday")
	assert.False(t, ok)

	_, ok = ParseWeekday("")
	assert.False(t, ok)
}

func TestAllClosed(t *testing.T) {
	stylistID := uuid.New()
	av := AllClosed(stylistID)

	assert.Equal(t, stylistID, av.StylistID)
	assert.Equal(t, DefaultSlotGranularityMinutes, av.SlotGranularityMinutes)
	require.Len(t, av.Rules, 7)
	for d := Sunday; d <= Saturday; d++ {
		assert.Empty(t, av.Rules[d])
	}
}

func TestBlocksFor_NilSafe(t *testing.T) {
	var av *WeeklyAvailability
	assert.Nil(t, av.BlocksFor(Monday))

	av = &WeeklyAvailability{}
	assert.Nil(t, av.BlocksFor(Monday))
}

func TestStylist_ApplyRating(t *testing.T) {
	st := &Stylist{RatingAvg: 4.0, RatingCount: 2}

	st.ApplyRating(5)

	assert.Equal(t, 3, st.RatingCount)
	// 13/3 = 4.333..., хранится округлённым до одного знака
	assert.InDelta(t, 4.3, st.RatingAvg, 1e-9)

	st.ApplyRating(5)
	assert.Equal(t, 4, st.RatingCount)
	// (4.3*3 + 5) / 4 = 4.475 -> 4.5
	assert.InDelta(t, 4.5, st.RatingAvg, 1e-9)

	// Первый отзыв
	fresh := &Stylist{}
	fresh.ApplyRating(4)
	assert.Equal(t, 1, fresh.RatingCount)
	assert.InDelta(t, 4.0, fresh.RatingAvg, 1e-9)
}

func TestService_EffectiveDurationMinutes(t *testing.T) {
	assert.Equal(t, 90, (&Service{DurationMinutes: 90}).EffectiveDurationMinutes())
	assert.Equal(t, DefaultServiceDurationMinutes, (&Service{}).EffectiveDurationMinutes())
	assert.Equal(t, DefaultServiceDurationMinutes, (&Service{DurationMinutes: -10}).EffectiveDurationMinutes())
}
