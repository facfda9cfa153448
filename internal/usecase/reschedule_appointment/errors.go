package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается при попытке перенести чужую запись
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrInvalidStatus возвращается, когда запись не в статусе scheduled:
	// завершённые, отменённые и no-show записи неизменяемы
	ErrInvalidStatus = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrInvalidDate возвращается при некорректной новой дате
	ErrInvalidDate = errors.New("reschedule_appointment: invalid appointment date")

	// ErrTherapistUnavailable возвращается, когда у терапевта нет доступности в новый день
	ErrTherapistUnavailable = errors.New("reschedule_appointment: therapist is not available on this date")

	// ErrInvalidTimeSlot возвращается, когда новое время не совпадает ни с одним валидным слотом
	ErrInvalidTimeSlot = errors.New("reschedule_appointment: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда целевой слот уже занят
	ErrSlotNotAvailable = errors.New("reschedule_appointment: slot is not available")

	// ErrTooLateToBook возвращается, когда перенос нарушает minNoticeMinutes
	ErrTooLateToBook = errors.New("reschedule_appointment: too late to book this slot")

	// ErrBusy возвращается, когда транзакция не зафиксировалась из-за конкуренции
	ErrBusy = errors.New("reschedule_appointment: storage busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
