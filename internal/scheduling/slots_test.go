package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

func slotStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func appt(id int64, start string, durationMinutes int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		TherapistID:     1,
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

func TestGenerateSlotsWorkdayWithBreak(t *testing.T) {
	// 09:00-17:00 с перерывом 12:00-13:00, услуга 60 минут:
	// 09,10,11 до перерыва и 13,14,15,16 после
	intervals := []Interval{
		{Start: "09:00", End: "12:00"},
		{Start: "13:00", End: "17:00"},
	}

	slots, err := GenerateSlots(intervals, 60, 0)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"},
		slotStrings(slots))
}

func TestGenerateSlotsCustomStep(t *testing.T) {
	// Шаг 15 минут: старты выровнены по шагу, слот должен целиком помещаться
	intervals := []Interval{{Start: "09:00", End: "10:00"}}

	slots, err := GenerateSlots(intervals, 30, 15)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:15", "09:30"}, slotStrings(slots))
}

func TestGenerateSlotsSlotMustFitEntirely(t *testing.T) {
	// 10:30-12:00, услуга 60 минут: 11:30 не входит (конец 12:30 за границей)
	intervals := []Interval{{Start: "10:30", End: "12:00"}}

	slots, err := GenerateSlots(intervals, 60, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00"}, slotStrings(slots))
}

func TestGenerateSlotsEmptyIntervals(t *testing.T) {
	slots, err := GenerateSlots(nil, 60, 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	intervals := []Interval{{Start: "09:00", End: "17:00"}}

	first, err := GenerateSlots(intervals, 45, 15)
	require.NoError(t, err)
	second, err := GenerateSlots(intervals, 45, 15)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCountOverlappingHalfOpenBoundaries(t *testing.T) {
	appointments := []*domain.Appointment{
		appt(1, "11:20", 20, domain.StatusScheduled), // 11:20-11:40
	}

	// Слот 11:30-12:00 пересекает запись 11:20-11:40
	assert.Equal(t, 1, CountOverlapping("11:30", 30, appointments, nil))

	// Граничащие интервалы не пересекаются
	adjacent := []*domain.Appointment{
		appt(2, "11:00", 30, domain.StatusScheduled), // 11:00-11:30
		appt(3, "12:00", 30, domain.StatusScheduled), // 12:00-12:30
	}
	assert.Equal(t, 0, CountOverlapping("11:30", 30, adjacent, nil))
}

func TestCountOverlappingIgnoresCancelled(t *testing.T) {
	appointments := []*domain.Appointment{
		appt(1, "10:00", 60, domain.StatusCancelled),
	}

	assert.Equal(t, 0, CountOverlapping("10:00", 60, appointments, nil))
}

func TestCountOverlappingCompletedStillOccupies(t *testing.T) {
	// Завершённая и неявочная записи интервал не освобождают
	appointments := []*domain.Appointment{
		appt(1, "10:00", 60, domain.StatusCompleted),
		appt(2, "11:00", 60, domain.StatusNoShow),
	}

	assert.Equal(t, 1, CountOverlapping("10:00", 60, appointments, nil))
	assert.Equal(t, 1, CountOverlapping("11:00", 60, appointments, nil))
}

func TestCountOverlappingExcludesOwnAppointment(t *testing.T) {
	// При переносе собственная запись не считается конфликтом
	own := int64(7)
	appointments := []*domain.Appointment{
		appt(7, "10:00", 60, domain.StatusScheduled),
	}

	assert.Equal(t, 1, CountOverlapping("10:00", 60, appointments, nil))
	assert.Equal(t, 0, CountOverlapping("10:00", 60, appointments, &own))
}

func TestFilterConflictingRemovesOnlyOverlapping(t *testing.T) {
	// Занятый интервал 10:00-11:00 убирает только слот 10:00
	intervals := []Interval{
		{Start: "09:00", End: "12:00"},
		{Start: "13:00", End: "17:00"},
	}
	candidates, err := GenerateSlots(intervals, 60, 0)
	require.NoError(t, err)

	appointments := []*domain.Appointment{
		appt(1, "10:00", 60, domain.StatusScheduled),
	}

	free := FilterConflicting(candidates, 60, appointments, nil)
	assert.Equal(t,
		[]string{"09:00", "11:00", "13:00", "14:00", "15:00", "16:00"},
		slotStrings(free))
}

func TestContainsSlot(t *testing.T) {
	slots := []types.TimeString{"09:00", "10:00", "11:00"}

	assert.True(t, ContainsSlot(slots, "10:00"))
	assert.False(t, ContainsSlot(slots, "10:30"))
}
