package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/pkg/ptr"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// monday 2026-09-07 — понедельник
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func weekdayRule(weekday time.Weekday, workStart, workEnd string) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		TherapistID: 1,
		Weekday:     &weekday,
		IsAvailable: true,
		WorkStart:   types.TimeString(workStart),
		WorkEnd:     types.TimeString(workEnd),
	}
}

func TestResolveDayRecurringRule(t *testing.T) {
	rules := []*domain.AvailabilityRule{
		weekdayRule(time.Monday, "09:00", "17:00"),
	}

	intervals := ResolveDay(rules, monday)
	require.Len(t, intervals, 1)
	assert.Equal(t, types.TimeString("09:00"), intervals[0].Start)
	assert.Equal(t, types.TimeString("17:00"), intervals[0].End)
}

func TestResolveDayNoRuleForWeekday(t *testing.T) {
	rules := []*domain.AvailabilityRule{
		weekdayRule(time.Tuesday, "09:00", "17:00"),
	}

	intervals := ResolveDay(rules, monday)
	assert.Empty(t, intervals)
}

func TestResolveDayBreakSplitsWindow(t *testing.T) {
	rule := weekdayRule(time.Monday, "09:00", "17:00")
	rule.BreakStart = ptr.Ptr(types.TimeString("12:00"))
	rule.BreakEnd = ptr.Ptr(types.TimeString("13:00"))

	intervals := ResolveDay([]*domain.AvailabilityRule{rule}, monday)
	require.Len(t, intervals, 2)
	assert.Equal(t, types.TimeString("09:00"), intervals[0].Start)
	assert.Equal(t, types.TimeString("12:00"), intervals[0].End)
	assert.Equal(t, types.TimeString("13:00"), intervals[1].Start)
	assert.Equal(t, types.TimeString("17:00"), intervals[1].End)
}

func TestResolveDayOverrideWinsOverRecurring(t *testing.T) {
	override := &domain.AvailabilityRule{
		TherapistID:  1,
		OverrideDate: ptr.Ptr(monday),
		IsAvailable:  true,
		WorkStart:    types.TimeString("10:00"),
		WorkEnd:      types.TimeString("14:00"),
	}
	rules := []*domain.AvailabilityRule{
		weekdayRule(time.Monday, "09:00", "17:00"),
		override,
	}

	intervals := ResolveDay(rules, monday)
	require.Len(t, intervals, 1)
	assert.Equal(t, types.TimeString("10:00"), intervals[0].Start)
	assert.Equal(t, types.TimeString("14:00"), intervals[0].End)
}

func TestResolveDayClosedOverrideBlocksDay(t *testing.T) {
	// Override с is_available=false полностью закрывает день,
	// повторяющееся правило не используется
	closed := &domain.AvailabilityRule{
		TherapistID:  1,
		OverrideDate: ptr.Ptr(monday),
		IsAvailable:  false,
	}
	rules := []*domain.AvailabilityRule{
		weekdayRule(time.Monday, "09:00", "17:00"),
		closed,
	}

	intervals := ResolveDay(rules, monday)
	assert.Empty(t, intervals)
}

func TestResolveDayBreakClampedToWorkWindow(t *testing.T) {
	// Перерыв, выехавший за конец окна, подрезается до окна
	rule := weekdayRule(time.Monday, "09:00", "17:00")
	rule.BreakStart = ptr.Ptr(types.TimeString("16:00"))
	rule.BreakEnd = ptr.Ptr(types.TimeString("18:00"))

	intervals := ResolveDay([]*domain.AvailabilityRule{rule}, monday)
	require.Len(t, intervals, 1)
	assert.Equal(t, types.TimeString("09:00"), intervals[0].Start)
	assert.Equal(t, types.TimeString("16:00"), intervals[0].End)
}

func TestResolveDayEmptyWorkWindow(t *testing.T) {
	rule := weekdayRule(time.Monday, "17:00", "09:00")

	intervals := ResolveDay([]*domain.AvailabilityRule{rule}, monday)
	assert.Empty(t, intervals)
}
