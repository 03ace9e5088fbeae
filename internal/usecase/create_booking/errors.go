package create_booking

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("create_booking: invalid input")

	// ErrStylistNotFound стилист не найден
	ErrStylistNotFound = errors.New("create_booking: stylist not found")

	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrStartInPast время начала бронирования уже прошло
	ErrStartInPast = errors.New("create_booking: start time is in the past")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("create_booking: internal error")
)
