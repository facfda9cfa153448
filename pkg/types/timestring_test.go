package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	// "24:00" допустимо как граница конца дня
	ts, err = NewTimeStringFromString("24:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	for _, bad := range []string{"", "24:01", "25:00", "10:60", "abc"} {
		_, err := NewTimeStringFromString(bad)
		assert.Error(t, err, "value %q must be rejected", bad)
	}
}

func TestMinutes(t *testing.T) {
	m, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = TimeString("24:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 1440, m)
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("10:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), ts)

	// Ровно до конца дня
	ts, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	// За конец дня
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)
}

func TestIsBeforeIsAfter(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("17:00"))
	assert.False(t, TimeString("17:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))

	assert.True(t, TimeString("17:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 7, 14, 5, 59, 0, time.UTC))
	assert.Equal(t, TimeString("14:05"), ts)
}

func TestValue(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	// Пустое значение пишется как NULL
	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("25:00").Value()
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	var ts TimeString

	// TIME-колонка Postgres приходит с секундами
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("17:30:00")))
	assert.Equal(t, TimeString("17:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 7, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
