package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/pkg/types"
)

// Weekday day of week, 0=Sunday..6=Saturday
// Matches time.Weekday numbering, so conversion is a plain cast
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// String returns the short lowercase key used in the API ("sun".."sat")
func (w Weekday) String() string {
	if w < Sunday || w > Saturday {
		return "unknown"
	}
	return weekdayNames[w]
}

// WeekdayOf returns the Weekday of a calendar date
func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday())
}

// ParseWeekday parses a short weekday key ("sun".."sat")
func ParseWeekday(s string) (Weekday, bool) {
	for i, name := range weekdayNames {
		if name == s {
			return Weekday(i), true
		}
	}
	return 0, false
}

// OpenBlock one contiguous local-time interval within a day during which
// appointments may start. Blocks with Start >= End produce no slots and are
// tolerated rather than rejected
type OpenBlock struct {
	Start types.TimeString
	End   types.TimeString
}

// WeeklyAvailability recurring weekly open-hours template of a stylist.
// Rules always carries all 7 days; a day with an empty block list is closed
type WeeklyAvailability struct {
	StylistID uuid.UUID

	// SlotGranularityMinutes informational value shown by the profile editor.
	// It does NOT constrain slot generation
	SlotGranularityMinutes int

	Rules map[Weekday][]OpenBlock
}

// AllClosed returns availability with every day closed. Used as the safe
// fallback when stored availability is absent or unreadable
func AllClosed(stylistID uuid.UUID) *WeeklyAvailability {
	rules := make(map[Weekday][]OpenBlock, 7)
	for d := Sunday; d <= Saturday; d++ {
		rules[d] = []OpenBlock{}
	}
	return &WeeklyAvailability{
		StylistID:              stylistID,
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
		Rules:                  rules,
	}
}

// BlocksFor returns the day's open blocks; a missing day is treated as closed
func (a *WeeklyAvailability) BlocksFor(day Weekday) []OpenBlock {
	if a == nil || a.Rules == nil {
		return nil
	}
	return a.Rules[day]
}
