package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// Используется вместо time.Time для полей, где важно только время в рамках дня
// (начало слота, открытие/закрытие, перерывы). Хранится в Postgres как TIME.
type TimeString string

const (
	timeStringFormat = "15:04"

	// minutesPerDay верхняя граница: "24:00" допустимо как конец рабочего дня
	minutesPerDay = 24 * 60
)

// NewTimeString creates a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringFormat))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes creates a TimeString from minutes since midnight.
// Допускает значение 1440 ("24:00") для границы конца дня.
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m > minutesPerDay {
		return "", fmt.Errorf("minutes out of range: %d", m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate checks that the value is a well-formed "HH:MM" time.
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time string format: %q", string(t))
	}
	if m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minutes in time string: %q", string(t))
	}
	// "24:00" — допустимая граница конца дня, "24:01" уже нет
	if h < 0 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid hours in time string: %q", string(t))
	}
	return h*60 + m, nil
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// Returns an error if the result crosses the end of the day.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(m + minutes)
}

// IsBefore reports whether t is strictly before other.
func (t TimeString) IsBefore(other TimeString) bool {
	a, err1 := t.Minutes()
	b, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly after other.
func (t TimeString) IsAfter(other TimeString) bool {
	a, err1 := t.Minutes()
	b, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a > b
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer for writing into a TIME column.
// Пустое значение пишется как NULL: у закрытого дня рабочего окна нет.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner for reading from a TIME column.
// Postgres TIME может прийти как string, []byte или time.Time в зависимости от драйвера.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME приходит как "10:00:00" — отрезаем секунды
	if len(s) > len(timeStringFormat) {
		s = s[:len(timeStringFormat)]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
