package delete_schedule_rule

import (
	"context"
)

type ScheduleService interface {
	DeleteRule(ctx context.Context, ruleID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
