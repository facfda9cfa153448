package domain

import (
	"time"

	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// AvailabilityRule describes when a therapist is available for booking.
// Правило либо повторяющееся (Weekday задан, OverrideDate = nil), либо
// привязано к конкретной дате (OverrideDate задан). Override-правило на дату
// полностью вытесняет повторяющееся правило для этого дня недели, включая
// случай IsAvailable = false — "в этот день не работаю".
type AvailabilityRule struct {
	ID          int64
	TherapistID int64

	OverrideDate *time.Time
	Weekday      *time.Weekday

	IsAvailable bool

	WorkStart types.TimeString
	WorkEnd   types.TimeString

	// Необязательный перерыв внутри рабочего окна
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOverride reports whether the rule is bound to one specific calendar date.
func (r *AvailabilityRule) IsOverride() bool {
	return r.OverrideDate != nil
}

// HasBreak reports whether the rule defines a break window.
func (r *AvailabilityRule) HasBreak() bool {
	return r.BreakStart != nil && r.BreakEnd != nil
}

// AppliesTo reports whether the rule covers the given calendar date.
func (r *AvailabilityRule) AppliesTo(date time.Time) bool {
	if r.IsOverride() {
		y1, m1, d1 := r.OverrideDate.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	return r.Weekday != nil && *r.Weekday == date.Weekday()
}

// BreakInsideWork reports whether the break window lies fully inside the work
// window. Правила с перерывом вне рабочего окна отклоняются при сохранении.
func (r *AvailabilityRule) BreakInsideWork() bool {
	if !r.HasBreak() {
		return true
	}
	if r.BreakStart.IsBefore(r.WorkStart) {
		return false
	}
	if r.BreakEnd.IsAfter(r.WorkEnd) {
		return false
	}
	return r.BreakStart.IsBefore(*r.BreakEnd)
}
