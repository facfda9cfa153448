package domain

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы записей, не занимающих временной интервал.
// Используется при фильтрации для подсчёта пересечений слотов.
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}

// ActiveStatuses статусы записей, занимающих временной интервал
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
	StatusNoShow,
}
