package scheduling

import (
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
)

// ResolveDay turns the therapist's availability rules into the ordered list of
// open intervals for one calendar date.
//
// Приоритет правил:
//  1. Override-правило на эту дату — используется ЕДИНСТВЕННО, даже если
//     IsAvailable = false (день полностью закрыт).
//  2. Повторяющееся правило на день недели.
//  3. Нет правила — день без доступности.
//
// Перерыв вычитается из рабочего окна. Правила с перерывом вне окна отклоняются
// при сохранении; если такая строка всё же встретилась, перерыв подрезается до окна.
func ResolveDay(rules []*domain.AvailabilityRule, date time.Time) []Interval {
	rule := pickRule(rules, date)
	if rule == nil || !rule.IsAvailable {
		return nil
	}

	work := Interval{Start: rule.WorkStart, End: rule.WorkEnd}
	if work.IsEmpty() {
		return nil
	}

	if !rule.HasBreak() {
		return []Interval{work}
	}

	return subtractBreak(work, Interval{Start: *rule.BreakStart, End: *rule.BreakEnd})
}

// pickRule выбирает правило для даты: override строго приоритетнее повторяющегося
func pickRule(rules []*domain.AvailabilityRule, date time.Time) *domain.AvailabilityRule {
	var recurring *domain.AvailabilityRule

	for _, r := range rules {
		if !r.AppliesTo(date) {
			continue
		}
		if r.IsOverride() {
			return r
		}
		if recurring == nil {
			recurring = r
		}
	}

	return recurring
}

// subtractBreak вычитает перерыв из рабочего окна, подрезая его до границ окна
func subtractBreak(work, brk Interval) []Interval {
	// Подрезаем перерыв до рабочего окна
	if brk.Start.IsBefore(work.Start) {
		brk.Start = work.Start
	}
	if work.End.IsBefore(brk.End) {
		brk.End = work.End
	}

	if brk.IsEmpty() || !work.Overlaps(brk) {
		return []Interval{work}
	}

	intervals := make([]Interval, 0, 2)

	before := Interval{Start: work.Start, End: brk.Start}
	if !before.IsEmpty() {
		intervals = append(intervals, before)
	}

	after := Interval{Start: brk.End, End: work.End}
	if !after.IsEmpty() {
		intervals = append(intervals, after)
	}

	return intervals
}
