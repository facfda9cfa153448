package update_schedule

import (
	"context"

	"github.com/m04kA/TMS-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertRule(ctx context.Context, req *models.UpsertRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
