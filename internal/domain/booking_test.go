package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusRequested, StatusConfirmed, true},
		{StatusRequested, StatusDeclined, true},
		{StatusRequested, StatusCancelled, true},
		{StatusRequested, StatusServiceComplete, false},
		{StatusRequested, StatusCompleted, false},

		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusServiceComplete, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusConfirmed, StatusDeclined, false},

		{StatusServiceComplete, StatusCompleted, true},
		{StatusServiceComplete, StatusCancelled, false},

		{StatusDeclined, StatusConfirmed, false},
		{StatusCancelled, StatusRequested, false},
		{StatusCompleted, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			b := Booking{Status: tt.from}
			assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, s := range []BookingStatus{
		StatusRequested, StatusConfirmed, StatusDeclined,
		StatusCancelled, StatusServiceComplete, StatusCompleted,
	} {
		assert.True(t, s.IsValid(), "status %s", s)
	}

	assert.False(t, BookingStatus("pending").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusRequested}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.True(t, (&Booking{Status: StatusServiceComplete}).IsActive())

	assert.False(t, (&Booking{Status: StatusDeclined}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: StatusCompleted}).IsActive())
}

func TestBooking_CanBeReviewed(t *testing.T) {
	reviewID := uuid.New()

	assert.True(t, (&Booking{Status: StatusServiceComplete}).CanBeReviewed())
	assert.True(t, (&Booking{Status: StatusCompleted}).CanBeReviewed())

	assert.False(t, (&Booking{Status: StatusConfirmed}).CanBeReviewed())
	assert.False(t, (&Booking{Status: StatusCompleted, ReviewID: &reviewID}).CanBeReviewed())
}

func TestBooking_CanBeRescheduled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusRequested}).CanBeRescheduled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeRescheduled())

	assert.False(t, (&Booking{Status: StatusServiceComplete}).CanBeRescheduled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeRescheduled())
}

func TestBooking_IsParticipant(t *testing.T) {
	clientID := uuid.New()
	stylistID := uuid.New()
	b := &Booking{ClientID: clientID, StylistID: stylistID}

	assert.True(t, b.IsParticipant(clientID))
	assert.True(t, b.IsParticipant(stylistID))
	assert.False(t, b.IsParticipant(uuid.New()))
}
