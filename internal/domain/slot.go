package domain

import (
	"time"

	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// AvailableSlot represents a bookable time slot for a therapist.
// Вычисляемая проекция: никогда не сохраняется в БД.
type AvailableSlot struct {
	TherapistID     int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// EndTime returns the slot end time (start + duration).
func (s *AvailableSlot) EndTime() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMinutes)
}
