package create_appointment

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("create_appointment: therapist not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена и недоступна для записи
	ErrServiceInactive = errors.New("create_appointment: service is inactive")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrTherapistUnavailable возвращается, когда у терапевта нет доступности в этот день
	ErrTherapistUnavailable = errors.New("create_appointment: therapist is not available on this date")

	// ErrInvalidTimeSlot возвращается, когда запрошенное время не совпадает ни с одним
	// валидным слотом (не выровнено по шагу или не помещается в рабочее окно)
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда слот уже занят другой записью
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrTooLateToBook возвращается, когда запись нарушает minNoticeMinutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrBusy возвращается, когда транзакция не зафиксировалась из-за конкуренции.
	// Retryable: повторный запрос с теми же параметрами безопасен.
	ErrBusy = errors.New("create_appointment: storage busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
