package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandly/booking-service/internal/domain"
	stylistRepo "github.com/strandly/booking-service/internal/infra/storage/stylist"
	"github.com/strandly/booking-service/internal/integrations/profileservice"
)

type fakeBookingRepo struct {
	createFn func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, booking)
}

type fakeStylistRepo struct {
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Stylist, error)
	getServiceFn func(ctx context.Context, stylistID, serviceID uuid.UUID) (*domain.Service, error)
}

func (f *fakeStylistRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Stylist, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeStylistRepo) GetService(ctx context.Context, stylistID, serviceID uuid.UUID) (*domain.Service, error) {
	if f.getServiceFn == nil {
		panic("GetService not configured")
	}
	return f.getServiceFn(ctx, stylistID, serviceID)
}

type fakeProfileClient struct {
	getFn func(ctx context.Context, userID uuid.UUID) (*profileservice.Profile, error)
}

func (f *fakeProfileClient) GetProfileWithGracefulDegradation(ctx context.Context, userID uuid.UUID) (*profileservice.Profile, error) {
	if f.getFn == nil {
		panic("GetProfileWithGracefulDegradation not configured")
	}
	return f.getFn(ctx, userID)
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

func validRequest() *Request {
	return &Request{
		ClientID:     uuid.New(),
		StylistID:    uuid.New(),
		ServiceID:    uuid.New(),
		StartAt:      time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC),
		EndAt:        time.Date(2025, 6, 7, 13, 0, 0, 0, time.UTC),
		LocationType: string(domain.LocationHomeStudio),
	}
}

func fixtureUseCase(req *Request) (*UseCase, *fakeBookingRepo) {
	bookings := &fakeBookingRepo{
		createFn: func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
			created := *b
			created.CreatedAt = time.Now()
			created.UpdatedAt = created.CreatedAt
			return &created, nil
		},
	}

	stylists := &fakeStylistRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Stylist, error) {
			return &domain.Stylist{ID: id, UserID: uuid.New(), Name: "Amara"}, nil
		},
		getServiceFn: func(ctx context.Context, stylistID, serviceID uuid.UUID) (*domain.Service, error) {
			return &domain.Service{
				ID:              serviceID,
				StylistID:       stylistID,
				Name:            "Box braids",
				Price:           150,
				DurationMinutes: 240,
				RequiresDeposit: true,
				DepositAmount:   50,
			}, nil
		},
	}

	profiles := &fakeProfileClient{
		getFn: func(ctx context.Context, userID uuid.UUID) (*profileservice.Profile, error) {
			return &profileservice.Profile{ID: userID.String(), DisplayName: "Nia"}, nil
		},
	}

	uc := NewUseCase(bookings, stylists, profiles, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return uc, bookings
}

func TestExecute_CreatesRequestedBooking(t *testing.T) {
	req := validRequest()
	uc, _ := fixtureUseCase(req)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	b := resp.Booking
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, req.ClientID, b.ClientID)
	assert.Equal(t, domain.StatusRequested, b.Status)

	// Интервал записан ровно как выбрал клиент
	assert.Equal(t, req.StartAt, b.StartAt)
	assert.Equal(t, req.EndAt, b.EndAt)

	// Денормализация
	assert.Equal(t, "Nia", b.ClientName)
	assert.Equal(t, "Amara", b.StylistName)
	assert.Equal(t, "Box braids", b.ServiceName)
	assert.Equal(t, 150.0, b.ServicePrice)
	assert.Equal(t, 150.0, b.TotalAmount)
	assert.Equal(t, 50.0, b.DepositAmount)
	assert.False(t, b.DepositPaid)

	// Новая заявка уведомляет стилиста, но не клиента
	assert.True(t, b.StylistHasNotification)
	assert.False(t, b.ClientHasNotification)

	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), b.RequestedAt)
}

func TestExecute_NoConflictCheck(t *testing.T) {
	// Пересечения с существующими бронированиями не проверяются:
	// два клиента могут выбрать один и тот же слот, разруливает стилист
	req := validRequest()
	uc, bookings := fixtureUseCase(req)

	var created int
	orig := bookings.createFn
	bookings.createFn = func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
		created++
		return orig(ctx, b)
	}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second := *req
	second.ClientID = uuid.New()
	_, err = uc.Execute(context.Background(), &second)
	require.NoError(t, err)

	assert.Equal(t, 2, created)
}

func TestExecute_ProfileDegradationLeavesNameEmpty(t *testing.T) {
	req := validRequest()
	uc, _ := fixtureUseCase(req)
	uc.profileClient = &fakeProfileClient{
		getFn: func(ctx context.Context, userID uuid.UUID) (*profileservice.Profile, error) {
			return nil, profileservice.ErrServiceDegraded
		},
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Booking.ClientName)
}

func TestExecute_StartInPast(t *testing.T) {
	req := validRequest()
	uc, _ := fixtureUseCase(req)
	uc.timeProvider = &fixedTimeProvider{now: req.StartAt.Add(time.Hour)}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestExecute_StartExactlyNowIsRejected(t *testing.T) {
	req := validRequest()
	uc, _ := fixtureUseCase(req)
	uc.timeProvider = &fixedTimeProvider{now: req.StartAt}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestExecute_StylistNotFound(t *testing.T) {
	req := validRequest()
	uc, _ := fixtureUseCase(req)
	uc.stylistRepo = &fakeStylistRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Stylist, error) {
			return nil, stylistRepo.ErrStylistNotFound
		},
	}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStylistNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	req := validRequest()
	uc, _ := fixtureUseCase(req)
	uc.stylistRepo = &fakeStylistRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Stylist, error) {
			return &domain.Stylist{ID: id}, nil
		},
		getServiceFn: func(ctx context.Context, stylistID, serviceID uuid.UUID) (*domain.Service, error) {
			return nil, stylistRepo.ErrServiceNotFound
		},
	}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _ := fixtureUseCase(validRequest())

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing client", func(r *Request) { r.ClientID = uuid.Nil }},
		{"missing stylist", func(r *Request) { r.StylistID = uuid.Nil }},
		{"missing service", func(r *Request) { r.ServiceID = uuid.Nil }},
		{"zero start", func(r *Request) { r.StartAt = time.Time{} }},
		{"zero end", func(r *Request) { r.EndAt = time.Time{} }},
		{"end before start", func(r *Request) { r.EndAt = r.StartAt.Add(-time.Hour) }},
		{"end equals start", func(r *Request) { r.EndAt = r.StartAt }},
		{"unknown location type", func(r *Request) { r.LocationType = "rooftop" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_RepoErrorWrapsInternal(t *testing.T) {
	req := validRequest()
	uc, bookings := fixtureUseCase(req)
	bookings.createFn = func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
		return nil, errors.New("connection refused")
	}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInternal)
}
