package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByTherapistWithFilter получает активные записи терапевта за период
	GetByTherapistWithFilter(ctx context.Context, filter domain.TherapistAppointmentsFilter) ([]*domain.Appointment, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	// GetForRange получает правила, действующие в диапазоне дат
	GetForRange(ctx context.Context, therapistID int64, from, to time.Time) ([]*domain.AvailabilityRule, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetTherapist(ctx context.Context, therapistID int64) (*catalogservice.Therapist, error)
	ListTherapists(ctx context.Context) ([]*catalogservice.Therapist, error)
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
