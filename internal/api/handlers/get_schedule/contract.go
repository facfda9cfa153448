package get_schedule

import (
	"context"

	"github.com/m04kA/TMS-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetTherapistSchedule(ctx context.Context, therapistID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
