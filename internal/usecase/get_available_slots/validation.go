package get_available_slots

import (
	"fmt"
	"time"
)

// maxRangeDays максимальная длина запрашиваемого диапазона дат
const maxRangeDays = 31

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.TherapistID != nil && *req.TherapistID <= 0 {
		return fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	if req.DateFrom.IsZero() {
		return fmt.Errorf("%w: dateFrom is required", ErrInvalidInput)
	}

	if !req.DateTo.IsZero() && req.DateTo.Before(req.DateFrom) {
		return fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidDate)
	}

	return nil
}

// validateDateRange проверяет диапазон с учётом ограничения advanceBookingDays
func validateDateRange(from, to, now time.Time, advanceBookingDays int) error {
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range longer than %d days", ErrInvalidDate, maxRangeDays)
	}

	// Диапазон целиком в прошлом не имеет смысла
	if isDateInPast(to, now) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 — без ограничений
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := dateOnly(now).AddDate(0, 0, advanceBookingDays)
	if dateOnly(from).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
