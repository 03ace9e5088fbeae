package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandly/booking-service/internal/domain"
	bookingRepo "github.com/strandly/booking-service/internal/infra/storage/booking"
	"github.com/strandly/booking-service/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	listFn       func(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	updateFn     func(ctx context.Context, id uuid.UUID, status domain.BookingStatus, respondedAt *time.Time, notifyClient, notifyStylist bool) error
	setPropFn    func(ctx context.Context, id uuid.UUID, proposal *domain.RescheduleProposal, notifyClient, notifyStylist bool) error
	resolveFn    func(ctx context.Context, id uuid.UUID, newStartAt, newEndAt *time.Time, notifyClient, notifyStylist bool) error
	clearNotifFn func(ctx context.Context, id uuid.UUID, clientSide bool) error
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeBookingRepo) ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	if f.listFn == nil {
		panic("ListByUser not configured")
	}
	return f.listFn(ctx, filter)
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, respondedAt *time.Time, notifyClient, notifyStylist bool) error {
	if f.updateFn == nil {
		panic("UpdateStatus not configured")
	}
	return f.updateFn(ctx, id, status, respondedAt, notifyClient, notifyStylist)
}

func (f *fakeBookingRepo) SetRescheduleProposal(ctx context.Context, id uuid.UUID, proposal *domain.RescheduleProposal, notifyClient, notifyStylist bool) error {
	if f.setPropFn == nil {
		panic("SetRescheduleProposal not configured")
	}
	return f.setPropFn(ctx, id, proposal, notifyClient, notifyStylist)
}

func (f *fakeBookingRepo) ResolveReschedule(ctx context.Context, id uuid.UUID, newStartAt, newEndAt *time.Time, notifyClient, notifyStylist bool) error {
	if f.resolveFn == nil {
		panic("ResolveReschedule not configured")
	}
	return f.resolveFn(ctx, id, newStartAt, newEndAt, notifyClient, notifyStylist)
}

func (f *fakeBookingRepo) ClearNotification(ctx context.Context, id uuid.UUID, clientSide bool) error {
	if f.clearNotifFn == nil {
		panic("ClearNotification not configured")
	}
	return f.clearNotifFn(ctx, id, clientSide)
}

type fakeStylistRepo struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Stylist, error)
}

func (f *fakeStylistRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Stylist, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// Участники, одни и те же во всех тестах
var (
	clientID      = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	stylistUserID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	stylistID     = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	strangerID    = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

func bookingInStatus(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:        uuid.New(),
		ClientID:  clientID,
		StylistID: stylistID,
		ServiceID: uuid.New(),
		StartAt:   time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2025, 6, 7, 13, 0, 0, 0, time.UTC),
		Status:    status,
	}
}

func fixtureService(booking *domain.Booking) (*Service, *fakeBookingRepo) {
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
			return booking, nil
		},
		updateFn: func(ctx context.Context, id uuid.UUID, status domain.BookingStatus, respondedAt *time.Time, notifyClient, notifyStylist bool) error {
			booking.Status = status
			if respondedAt != nil {
				booking.RespondedAt = respondedAt
			}
			return nil
		},
		setPropFn: func(ctx context.Context, id uuid.UUID, proposal *domain.RescheduleProposal, notifyClient, notifyStylist bool) error {
			booking.RescheduleProposal = proposal
			return nil
		},
		resolveFn: func(ctx context.Context, id uuid.UUID, newStartAt, newEndAt *time.Time, notifyClient, notifyStylist bool) error {
			if newStartAt != nil {
				booking.StartAt = *newStartAt
				booking.EndAt = *newEndAt
			}
			booking.RescheduleProposal = nil
			return nil
		},
	}

	stylists := &fakeStylistRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Stylist, error) {
			return &domain.Stylist{ID: stylistID, UserID: stylistUserID, Name: "Amara"}, nil
		},
	}

	svc := NewService(repo, stylists, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return svc, repo
}

func TestGetByID_AccessControl(t *testing.T) {
	booking := bookingInStatus(domain.StatusConfirmed)
	svc, _ := fixtureService(booking)

	t.Run("client sees own booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), booking.ID, clientID)
		require.NoError(t, err)
		assert.Equal(t, booking.ID.String(), resp.ID)
	})

	t.Run("stylist sees own booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), booking.ID, stylistUserID)
		require.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), booking.ID, strangerID)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestGetByID_NotFound(t *testing.T) {
	svc, repo := fixtureService(bookingInStatus(domain.StatusRequested))
	repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
		return nil, bookingRepo.ErrBookingNotFound
	}

	_, err := svc.GetByID(context.Background(), uuid.New(), clientID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatus_StylistConfirms(t *testing.T) {
	booking := bookingInStatus(domain.StatusRequested)
	svc, _ := fixtureService(booking)

	resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: booking.ID,
		UserID:    stylistUserID,
		Status:    "confirmed",
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	// Ответ стилиста на заявку фиксирует respondedAt
	require.NotNil(t, resp.RespondedAt)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), *resp.RespondedAt)
}

func TestUpdateStatus_ClientCannotConfirm(t *testing.T) {
	booking := bookingInStatus(domain.StatusRequested)
	svc, _ := fixtureService(booking)

	for _, status := range []string{"confirmed", "declined", "service_complete"} {
		_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			BookingID: booking.ID,
			UserID:    clientID,
			Status:    status,
		})
		assert.ErrorIs(t, err, ErrForbidden, "status %s", status)
	}
}

func TestUpdateStatus_OnlyClientCompletes(t *testing.T) {
	booking := bookingInStatus(domain.StatusServiceComplete)
	svc, _ := fixtureService(booking)

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: booking.ID,
		UserID:    stylistUserID,
		Status:    "completed",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: booking.ID,
		UserID:    clientID,
		Status:    "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Nil(t, resp.RespondedAt)
}

func TestUpdateStatus_EitherSideCancels(t *testing.T) {
	for _, userID := range []uuid.UUID{clientID, stylistUserID} {
		booking := bookingInStatus(domain.StatusConfirmed)
		svc, _ := fixtureService(booking)

		resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			BookingID: booking.ID,
			UserID:    userID,
			Status:    "cancelled",
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
	}
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	booking := bookingInStatus(domain.StatusCompleted)
	svc, _ := fixtureService(booking)

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: booking.ID,
		UserID:    clientID,
		Status:    "cancelled",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_RequestedCannotBeSetDirectly(t *testing.T) {
	booking := bookingInStatus(domain.StatusDeclined)
	svc, _ := fixtureService(booking)

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: booking.ID,
		UserID:    stylistUserID,
		Status:    "requested",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	booking := bookingInStatus(domain.StatusRequested)
	svc, _ := fixtureService(booking)

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: booking.ID,
		UserID:    stylistUserID,
		Status:    "postponed",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_NotifiesOppositeSide(t *testing.T) {
	booking := bookingInStatus(domain.StatusRequested)
	svc, repo := fixtureService(booking)

	var gotNotifyClient, gotNotifyStylist bool
	orig := repo.updateFn
	repo.updateFn = func(ctx context.Context, id uuid.UUID, status domain.BookingStatus, respondedAt *time.Time, notifyClient, notifyStylist bool) error {
		gotNotifyClient, gotNotifyStylist = notifyClient, notifyStylist
		return orig(ctx, id, status, respondedAt, notifyClient, notifyStylist)
	}

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		BookingID: booking.ID,
		UserID:    stylistUserID,
		Status:    "confirmed",
	})
	require.NoError(t, err)
	assert.True(t, gotNotifyClient)
	assert.False(t, gotNotifyStylist)
}

func TestProposeReschedule(t *testing.T) {
	start := time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	t.Run("stylist proposes new interval", func(t *testing.T) {
		booking := bookingInStatus(domain.StatusConfirmed)
		svc, _ := fixtureService(booking)

		resp, err := svc.ProposeReschedule(context.Background(), &models.ProposeRescheduleRequest{
			BookingID:       booking.ID,
			UserID:          stylistUserID,
			ProposedStartAt: start,
			ProposedEndAt:   end,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.RescheduleProposal)
		assert.Equal(t, start, resp.RescheduleProposal.ProposedStartAt)
		assert.Equal(t, stylistUserID.String(), resp.RescheduleProposal.ProposedBy)
	})

	t.Run("declined booking cannot be rescheduled", func(t *testing.T) {
		booking := bookingInStatus(domain.StatusDeclined)
		svc, _ := fixtureService(booking)

		_, err := svc.ProposeReschedule(context.Background(), &models.ProposeRescheduleRequest{
			BookingID:       booking.ID,
			UserID:          stylistUserID,
			ProposedStartAt: start,
			ProposedEndAt:   end,
		})
		assert.ErrorIs(t, err, ErrCannotReschedule)
	})

	t.Run("inverted interval is rejected", func(t *testing.T) {
		booking := bookingInStatus(domain.StatusConfirmed)
		svc, _ := fixtureService(booking)

		_, err := svc.ProposeReschedule(context.Background(), &models.ProposeRescheduleRequest{
			BookingID:       booking.ID,
			UserID:          stylistUserID,
			ProposedStartAt: end,
			ProposedEndAt:   start,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("interval in the past is rejected", func(t *testing.T) {
		booking := bookingInStatus(domain.StatusConfirmed)
		svc, _ := fixtureService(booking)

		_, err := svc.ProposeReschedule(context.Background(), &models.ProposeRescheduleRequest{
			BookingID:       booking.ID,
			UserID:          stylistUserID,
			ProposedStartAt: time.Date(2025, 5, 1, 11, 0, 0, 0, time.UTC),
			ProposedEndAt:   time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRespondReschedule(t *testing.T) {
	start := time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	withProposal := func(by uuid.UUID) *domain.Booking {
		booking := bookingInStatus(domain.StatusConfirmed)
		booking.RescheduleProposal = &domain.RescheduleProposal{
			ProposedStartAt: start,
			ProposedEndAt:   end,
			ProposedBy:      by,
			CreatedAt:       time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		}
		return booking
	}

	t.Run("accept applies proposed interval", func(t *testing.T) {
		booking := withProposal(stylistUserID)
		svc, _ := fixtureService(booking)

		resp, err := svc.RespondReschedule(context.Background(), &models.RespondRescheduleRequest{
			BookingID: booking.ID,
			UserID:    clientID,
			Accept:    true,
		})
		require.NoError(t, err)
		assert.Equal(t, start, resp.StartAt)
		assert.Equal(t, end, resp.EndAt)
		assert.Nil(t, resp.RescheduleProposal)
	})

	t.Run("decline keeps original interval", func(t *testing.T) {
		booking := withProposal(stylistUserID)
		originalStart := booking.StartAt
		svc, _ := fixtureService(booking)

		resp, err := svc.RespondReschedule(context.Background(), &models.RespondRescheduleRequest{
			BookingID: booking.ID,
			UserID:    clientID,
			Accept:    false,
		})
		require.NoError(t, err)
		assert.Equal(t, originalStart, resp.StartAt)
		assert.Nil(t, resp.RescheduleProposal)
	})

	t.Run("author cannot answer own proposal", func(t *testing.T) {
		booking := withProposal(stylistUserID)
		svc, _ := fixtureService(booking)

		_, err := svc.RespondReschedule(context.Background(), &models.RespondRescheduleRequest{
			BookingID: booking.ID,
			UserID:    stylistUserID,
			Accept:    true,
		})
		assert.ErrorIs(t, err, ErrOwnProposal)
	})

	t.Run("no pending proposal", func(t *testing.T) {
		booking := bookingInStatus(domain.StatusConfirmed)
		svc, _ := fixtureService(booking)

		_, err := svc.RespondReschedule(context.Background(), &models.RespondRescheduleRequest{
			BookingID: booking.ID,
			UserID:    clientID,
			Accept:    true,
		})
		assert.ErrorIs(t, err, ErrNoRescheduleProposal)
	})
}

func TestGetUserBookings_DefaultIsFullHistory(t *testing.T) {
	svc, repo := fixtureService(bookingInStatus(domain.StatusDeclined))

	var gotFilter domain.UserBookingsFilter
	repo.listFn = func(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
		gotFilter = filter
		return []*domain.Booking{
			bookingInStatus(domain.StatusDeclined),
			bookingInStatus(domain.StatusCancelled),
			bookingInStatus(domain.StatusConfirmed),
		}, nil
	}

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: clientID,
	})
	require.NoError(t, err)

	// Без фильтров история не сужается до активных
	assert.Nil(t, gotFilter.Status)
	assert.False(t, gotFilter.ActiveOnly)
	assert.Equal(t, 3, resp.Total)
}

func TestGetUserBookings_Narrowing(t *testing.T) {
	svc, repo := fixtureService(bookingInStatus(domain.StatusConfirmed))

	var gotFilter domain.UserBookingsFilter
	repo.listFn = func(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
		gotFilter = filter
		return nil, nil
	}

	status := "declined"
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: clientID,
		Status: &status,
	})
	require.NoError(t, err)
	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, domain.StatusDeclined, *gotFilter.Status)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:     clientID,
		ActiveOnly: true,
	})
	require.NoError(t, err)
	assert.True(t, gotFilter.ActiveOnly)
}

func TestGetUserBookings_UnknownStatus(t *testing.T) {
	svc, _ := fixtureService(bookingInStatus(domain.StatusConfirmed))

	status := "postponed"
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: clientID,
		Status: &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClearNotification(t *testing.T) {
	booking := bookingInStatus(domain.StatusConfirmed)
	svc, repo := fixtureService(booking)

	var gotClientSide bool
	repo.clearNotifFn = func(ctx context.Context, id uuid.UUID, clientSide bool) error {
		gotClientSide = clientSide
		return nil
	}

	require.NoError(t, svc.ClearNotification(context.Background(), booking.ID, clientID))
	assert.True(t, gotClientSide)

	require.NoError(t, svc.ClearNotification(context.Background(), booking.ID, stylistUserID))
	assert.False(t, gotClientSide)

	err := svc.ClearNotification(context.Background(), booking.ID, strangerID)
	assert.ErrorIs(t, err, ErrForbidden)
}
