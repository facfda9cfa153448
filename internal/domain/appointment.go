package domain

import (
	"time"

	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// Appointment represents a booked therapy session
type Appointment struct {
	ID              int64
	ClientID        int64
	TherapistID     int64
	ServiceID       int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Денормализованные данные услуги на момент бронирования
	ServiceName  string
	ServicePrice float64

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment occupies its time interval.
// Только отменённая запись освобождает слот: завершённая или no-show запись
// остаётся в прошлом и на пересечения уже не влияет, но интервал не отдаёт.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// EndTime returns the appointment end time (start + duration).
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// CanBeCancelled reports whether the appointment may still be cancelled.
func (a *Appointment) CanBeCancelled() bool {
	return CanTransition(a.Status, StatusCancelled)
}

// CanBeRescheduled reports whether the appointment may be moved to another slot.
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusScheduled
}

// TherapistAppointmentsFilter фильтр выборки записей терапевта
type TherapistAppointmentsFilter struct {
	TherapistID     int64              // Обязательный параметр
	DateFrom        *time.Time         // Начало периода (опционально)
	DateTo          *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	ExcludeID       *int64             // Исключить запись (для переноса)
	IncludeInactive bool               // Включать ли отменённые записи
}
