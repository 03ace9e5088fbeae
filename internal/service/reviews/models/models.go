package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string
}

// ReviewResponse отзыв в ответе API
type ReviewResponse struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"bookingId"`
	ClientID   string    `json:"clientId"`
	ClientName string    `json:"clientName"`
	StylistID  string    `json:"stylistId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewListResponse список отзывов стилиста
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Total   int              `json:"total"`
}

// FromDomainReview конвертирует доменный отзыв в ответ API
func FromDomainReview(r *domain.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID.String(),
		BookingID:  r.BookingID.String(),
		ClientID:   r.ClientID.String(),
		ClientName: r.ClientName,
		StylistID:  r.StylistID.String(),
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

// FromDomainReviewList конвертирует список доменных отзывов
func FromDomainReviewList(reviews []*domain.Review) *ReviewListResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = *FromDomainReview(r)
	}
	return &ReviewListResponse{
		Reviews: out,
		Total:   len(out),
	}
}
