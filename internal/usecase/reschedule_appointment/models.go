package reschedule_appointment

import (
	"time"

	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64            // ID переносимой записи
	ClientID      int64            // ID клиента (перенести можно только свою запись)
	NewDate       time.Time        // Новая дата
	NewStartTime  types.TimeString // Новое время начала
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID              int64            // ID записи
	ClientID        int64            // ID клиента
	TherapistID     int64            // ID терапевта
	ServiceID       int64            // ID услуги
	Date            time.Time        // Новая дата записи
	StartTime       types.TimeString // Новое время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи
	UpdatedAt       time.Time        // Время обновления
}
