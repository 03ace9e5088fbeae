package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusRequested       BookingStatus = "requested"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusDeclined        BookingStatus = "declined"
	StatusCancelled       BookingStatus = "cancelled"
	StatusServiceComplete BookingStatus = "service_complete"
	StatusCompleted       BookingStatus = "completed"
)

// IsValid returns true for a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusDeclined,
		StatusCancelled, StatusServiceComplete, StatusCompleted:
		return true
	}
	return false
}

// RescheduleProposal pending proposal to move a booking to a new interval
type RescheduleProposal struct {
	ProposedStartAt time.Time
	ProposedEndAt   time.Time
	ProposedBy      uuid.UUID // user who made the proposal
	CreatedAt       time.Time
}

// Booking represents an appointment between a client and a stylist.
// StartAt/EndAt are recorded verbatim from the slot the client picked
type Booking struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	StylistID uuid.UUID
	ServiceID uuid.UUID

	StartAt time.Time
	EndAt   time.Time
	Status  BookingStatus

	RequestedAt time.Time
	RespondedAt *time.Time

	LocationType       LocationType
	MobileLocationNote *string

	// Denormalized data for history views
	ClientName   string
	StylistName  string
	ServiceName  string
	ServicePrice float64

	// Payment-status flags only; payment processing happens elsewhere
	DepositAmount float64
	DepositPaid   bool
	TotalAmount   float64
	BalancePaid   bool

	RescheduleProposal *RescheduleProposal
	ReviewID           *uuid.UUID

	// Per-side "something changed" flags driving the inbox badges
	ClientHasNotification  bool
	StylistHasNotification bool
	LastMessageAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// allowedTransitions допустимые переходы статусов бронирования
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusRequested:       {StatusConfirmed, StatusDeclined, StatusCancelled},
	StatusConfirmed:       {StatusCancelled, StatusServiceComplete},
	StatusServiceComplete: {StatusCompleted},
}

// CanTransitionTo returns true if the status change is allowed
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsActive returns true if the booking is in an active state
func (b *Booking) IsActive() bool {
	return b.Status != StatusDeclined &&
		b.Status != StatusCancelled &&
		b.Status != StatusCompleted
}

// IsParticipant returns true if the user is the client or the stylist side owner
func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return b.ClientID == userID || b.StylistID == userID
}

// CanBeRescheduled returns true while a new interval may still be proposed
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusRequested || b.Status == StatusConfirmed
}

// CanBeReviewed returns true once the service took place and no review exists yet
func (b *Booking) CanBeReviewed() bool {
	return (b.Status == StatusServiceComplete || b.Status == StatusCompleted) && b.ReviewID == nil
}

// UserBookingsFilter фильтр для выборки бронирований пользователя
// Пользователь участвует в бронировании либо как клиент, либо как стилист.
// Без фильтров возвращается полная история во всех статусах
type UserBookingsFilter struct {
	UserID     uuid.UUID
	Status     *BookingStatus
	ActiveOnly bool
}
