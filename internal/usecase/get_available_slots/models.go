package get_available_slots

import (
	"time"

	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID   int64      // ID услуги (определяет длительность слота)
	TherapistID *int64     // ID терапевта; nil — слоты по всем активным терапевтам
	DateFrom    time.Time  // Начало диапазона дат (включительно)
	DateTo      time.Time  // Конец диапазона дат (включительно); zero = один день DateFrom
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ServiceID       int64     // ID услуги
	DurationMinutes int       // Длительность слота
	DateFrom        time.Time // Начало диапазона
	DateTo          time.Time // Конец диапазона
	Slots           []Slot    // Доступные слоты, упорядочены по терапевту, дате и времени
}

// Slot модель доступного временного слота
type Slot struct {
	TherapistID     int64            // ID терапевта
	Date            time.Time        // Дата слота
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
}
