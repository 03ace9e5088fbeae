package domain

// Default values applied when a caller does not specify them
const (
	DefaultServiceDurationMinutes = 60
	DefaultDaysForward            = 14
	DefaultSlotGranularityMinutes = 120
)

// SlotScanStrideMinutes is the fixed spacing between consecutive candidate
// slot start times within an open block. It does not depend on service duration,
// so start times align to a grid offset from each block's start
const SlotScanStrideMinutes = 30

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MinDaysForward            = 1
	MaxDaysForward            = 90
	MinRating                 = 1
	MaxRating                 = 5
	MaxCommentLength          = 1000
	MaxLocationNoteLength     = 500
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
)

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации при выборке активных списков
var InactiveStatuses = []BookingStatus{
	StatusDeclined,
	StatusCancelled,
	StatusCompleted,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusRequested,
	StatusConfirmed,
	StatusServiceComplete,
}
