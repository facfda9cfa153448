package domain

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// statusTransitions единственная таблица допустимых переходов статусов.
// Любой переход, которого здесь нет, запрещён. Терминальные статусы
// (completed, cancelled, no_show) не имеют исходящих переходов.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// CanTransition reports whether the status change from → to is legal.
func CanTransition(from, to AppointmentStatus) bool {
	allowed, ok := statusTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s AppointmentStatus) IsTerminal() bool {
	allowed, ok := statusTransitions[s]
	return ok && len(allowed) == 0
}

// IsValid reports whether the value is a known appointment status.
func (s AppointmentStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// ParseStatus converts a string into an AppointmentStatus.
func ParseStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(s)
	return status, status.IsValid()
}
