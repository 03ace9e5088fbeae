package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrForbidden возвращается, когда пользователь не участник бронирования
	ErrForbidden = errors.New("bookings.service: access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("bookings.service: invalid status transition")

	// ErrCannotReschedule возвращается, когда перенос недоступен в текущем статусе
	ErrCannotReschedule = errors.New("bookings.service: booking cannot be rescheduled")

	// ErrNoRescheduleProposal возвращается при ответе на несуществующее предложение
	ErrNoRescheduleProposal = errors.New("bookings.service: no pending reschedule proposal")

	// ErrOwnProposal возвращается, когда автор предложения пытается сам на него ответить
	ErrOwnProposal = errors.New("bookings.service: cannot respond to own proposal")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
