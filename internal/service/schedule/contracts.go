package schedule

import (
	"context"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
)

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetByTherapist(ctx context.Context, therapistID int64) ([]*domain.AvailabilityRule, error)
	Upsert(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	Delete(ctx context.Context, ruleID int64) error
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetTherapist(ctx context.Context, therapistID int64) (*catalogservice.Therapist, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
