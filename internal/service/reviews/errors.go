package reviews

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reviews.service: booking not found")

	// ErrForbidden возвращается, когда отзыв оставляет не клиент бронирования
	ErrForbidden = errors.New("reviews.service: access denied")

	// ErrNotReviewable возвращается, когда бронирование ещё нельзя или уже нельзя отрецензировать
	ErrNotReviewable = errors.New("reviews.service: booking is not reviewable")

	// ErrAlreadyReviewed возвращается при повторном отзыве на то же бронирование
	ErrAlreadyReviewed = errors.New("reviews.service: booking already reviewed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reviews.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reviews.service: internal error")
)
