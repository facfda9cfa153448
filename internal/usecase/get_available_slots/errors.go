package get_available_slots

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("get_available_slots: therapist not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена и недоступна для записи
	ErrServiceInactive = errors.New("get_available_slots: service is inactive")

	// ErrInvalidDate возвращается при некорректной дате или диапазоне дат
	ErrInvalidDate = errors.New("get_available_slots: invalid date range")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
