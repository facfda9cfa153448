package scheduling

import (
	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// GenerateSlots turns open intervals into candidate slot start times.
// Старты выровнены по шагу stepMinutes от начала интервала; слот входит в
// результат только если целиком помещается в интервал (start+duration <= end).
// Чистая функция: одинаковые входы всегда дают одинаковый список.
func GenerateSlots(intervals []Interval, durationMinutes, stepMinutes int) ([]types.TimeString, error) {
	if stepMinutes <= 0 {
		stepMinutes = durationMinutes
	}

	slots := make([]types.TimeString, 0)

	for _, interval := range intervals {
		current := interval.Start

		for current.IsBefore(interval.End) {
			slotEnd, err := current.AddMinutes(durationMinutes)
			if err != nil {
				// Слот выехал за конец дня — дальше в этом интервале слотов нет
				break
			}
			if slotEnd.IsAfter(interval.End) {
				break
			}

			slots = append(slots, current)

			current, err = current.AddMinutes(stepMinutes)
			if err != nil {
				break
			}
		}
	}

	return slots, nil
}

// CountOverlapping counts active appointments truly overlapping the candidate
// interval [start, start+duration).
//
// Пересечение по правилу полуоткрытых интервалов: existingStart < candidateEnd
// && candidateStart < existingEnd. Граничащие записи не пересекаются:
//   - Слот 11:30-12:00, запись 11:20-11:40 → пересечение (11:30-11:40)
//   - Слот 11:30-12:00, запись 11:00-11:30 → нет пересечения
//   - Слот 11:30-12:00, запись 12:00-12:30 → нет пересечения
//
// excludeID исключает собственную запись при переносе.
func CountOverlapping(start types.TimeString, durationMinutes int, appointments []*domain.Appointment, excludeID *int64) int {
	slotEnd, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return 0
	}

	count := 0

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}

		apptEnd, err := appt.EndTime()
		if err != nil {
			continue
		}

		if appt.StartTime.IsBefore(slotEnd) && apptEnd.IsAfter(start) {
			count++
		}
	}

	return count
}

// FilterConflicting removes candidate starts overlapping any active appointment.
func FilterConflicting(slots []types.TimeString, durationMinutes int, appointments []*domain.Appointment, excludeID *int64) []types.TimeString {
	free := make([]types.TimeString, 0, len(slots))

	for _, slot := range slots {
		if CountOverlapping(slot, durationMinutes, appointments, excludeID) == 0 {
			free = append(free, slot)
		}
	}

	return free
}

// ContainsSlot reports whether start is one of the generated candidate starts.
// Используется на пути записи: запрошенный интервал обязан совпадать с
// валидным кандидатом, а не просто попадать в рабочее окно.
func ContainsSlot(slots []types.TimeString, start types.TimeString) bool {
	for _, s := range slots {
		if s == start {
			return true
		}
	}
	return false
}
