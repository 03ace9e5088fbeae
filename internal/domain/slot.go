package domain

import "time"

// BookableSlot represents one concrete, dated, duration-sized bookable interval
// derived from an open block. Slots are computed on demand and never persisted;
// callers use StartAt as the de-facto identity when a client picks one
type BookableSlot struct {
	StartAt time.Time
	EndAt   time.Time
	Label   string // display-only, e.g. "Sat, Mar 7 • 9:30 AM"
}

// DurationMinutes returns the slot length in whole minutes
func (s *BookableSlot) DurationMinutes() int {
	return int(s.EndAt.Sub(s.StartAt) / time.Minute)
}

// DateKey returns the local calendar date of the slot start as "YYYY-MM-DD".
// Lexicographic order of keys is chronological
func (s *BookableSlot) DateKey() string {
	return s.StartAt.Format(DateFormat)
}

// SlotLabel renders the human label for a slot start
func SlotLabel(startAt time.Time) string {
	return startAt.Format("Mon, Jan 2") + " • " + startAt.Format("3:04 PM")
}

// SlotGroup slots of one calendar date, in generation order
type SlotGroup struct {
	Date  string // "YYYY-MM-DD"
	Slots []BookableSlot
}
