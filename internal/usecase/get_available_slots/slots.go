package get_available_slots

import (
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// filterByMinNotice отбрасывает слоты, начинающиеся раньше now + minNoticeMinutes.
// Применяется только к сегодняшней дате: завтрашние слоты проходят целиком.
func filterByMinNotice(slots []types.TimeString, now time.Time, minNoticeMinutes int) []types.TimeString {
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// За пределами конца дня бронировать на сегодня уже нельзя
		return []types.TimeString{}
	}

	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsBefore(minAllowedTime) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// bucketByDate раскладывает записи по календарным датам
func bucketByDate(appointments []*domain.Appointment) map[time.Time][]*domain.Appointment {
	buckets := make(map[time.Time][]*domain.Appointment, len(appointments))
	for _, appt := range appointments {
		key := dateOnly(appt.AppointmentDate)
		buckets[key] = append(buckets[key], appt)
	}
	return buckets
}
