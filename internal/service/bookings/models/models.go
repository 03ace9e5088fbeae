package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
	"github.com/strandly/booking-service/pkg/ptr"
)

// RescheduleProposalResponse предложение о переносе в ответе API
type RescheduleProposalResponse struct {
	ProposedStartAt time.Time `json:"proposedStartAt"`
	ProposedEndAt   time.Time `json:"proposedEndAt"`
	ProposedBy      string    `json:"proposedBy"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BookingResponse бронирование в ответе API
type BookingResponse struct {
	ID        string `json:"id"`
	ClientID  string `json:"clientId"`
	StylistID string `json:"stylistId"`
	ServiceID string `json:"serviceId"`

	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Status  string    `json:"status"`

	RequestedAt time.Time  `json:"requestedAt"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`

	LocationType       string  `json:"locationType"`
	MobileLocationNote *string `json:"mobileLocationNote,omitempty"`

	ClientName   string  `json:"clientName"`
	StylistName  string  `json:"stylistName"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	DepositAmount float64 `json:"depositAmount"`
	DepositPaid   bool    `json:"depositPaid"`
	TotalAmount   float64 `json:"totalAmount"`
	BalancePaid   bool    `json:"balancePaid"`

	RescheduleProposal *RescheduleProposalResponse `json:"rescheduleProposal,omitempty"`
	ReviewID           *string                     `json:"reviewId,omitempty"`

	ClientHasNotification  bool       `json:"clientHasNotification"`
	StylistHasNotification bool       `json:"stylistHasNotification"`
	LastMessageAt          *time.Time `json:"lastMessageAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// GetUserBookingsRequest запрос истории бронирований пользователя
// Без фильтров возвращается полная история во всех статусах
type GetUserBookingsRequest struct {
	UserID     uuid.UUID
	Status     *string
	ActiveOnly bool
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	Status    string
}

// ProposeRescheduleRequest запрос на предложение переноса
type ProposeRescheduleRequest struct {
	BookingID       uuid.UUID
	UserID          uuid.UUID
	ProposedStartAt time.Time
	ProposedEndAt   time.Time
}

// RespondRescheduleRequest ответ на предложение переноса
type RespondRescheduleRequest struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	Accept    bool
}

// FromDomainBooking конвертирует доменное бронирование в ответ API
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:                     b.ID.String(),
		ClientID:               b.ClientID.String(),
		StylistID:              b.StylistID.String(),
		ServiceID:              b.ServiceID.String(),
		StartAt:                b.StartAt,
		EndAt:                  b.EndAt,
		Status:                 string(b.Status),
		RequestedAt:            b.RequestedAt,
		RespondedAt:            b.RespondedAt,
		LocationType:           string(b.LocationType),
		MobileLocationNote:     b.MobileLocationNote,
		ClientName:             b.ClientName,
		StylistName:            b.StylistName,
		ServiceName:            b.ServiceName,
		ServicePrice:           b.ServicePrice,
		DepositAmount:          b.DepositAmount,
		DepositPaid:            b.DepositPaid,
		TotalAmount:            b.TotalAmount,
		BalancePaid:            b.BalancePaid,
		ClientHasNotification:  b.ClientHasNotification,
		StylistHasNotification: b.StylistHasNotification,
		LastMessageAt:          b.LastMessageAt,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
	}

	if b.RescheduleProposal != nil {
		resp.RescheduleProposal = &RescheduleProposalResponse{
			ProposedStartAt: b.RescheduleProposal.ProposedStartAt,
			ProposedEndAt:   b.RescheduleProposal.ProposedEndAt,
			ProposedBy:      b.RescheduleProposal.ProposedBy.String(),
			CreatedAt:       b.RescheduleProposal.CreatedAt,
		}
	}
	if b.ReviewID != nil {
		resp.ReviewID = ptr.Ptr(b.ReviewID.String())
	}

	return resp
}

// FromDomainBookingList конвертирует список доменных бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = *FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: out,
		Total:    len(out),
	}
}

// ToDomainBookingStatus парсит строковый статус в доменный
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return status, nil
}
