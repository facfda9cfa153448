package scheduling

import "github.com/m04kA/TMS-BookingService/pkg/types"

// Interval полуоткрытый интервал времени в рамках дня: [Start, End)
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// IsEmpty reports whether the interval contains no time.
func (i Interval) IsEmpty() bool {
	return !i.Start.IsBefore(i.End)
}

// Overlaps reports whether two half-open intervals truly overlap.
// Граничащие интервалы (конец одного = начало другого) НЕ пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	return other.Start.IsBefore(i.End) && i.Start.IsBefore(other.End)
}

// Contains reports whether other lies fully inside i.
func (i Interval) Contains(other Interval) bool {
	return !other.Start.IsBefore(i.Start) && !i.End.IsBefore(other.End)
}
