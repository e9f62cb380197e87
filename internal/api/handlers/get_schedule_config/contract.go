package get_schedule_config

import (
	"context"

	"github.com/dkoval85/appointment-service/internal/service/schedule/models"
)

type ScheduleService interface {
	GetEffective(ctx context.Context, employeeID *int64) (*models.ConfigResponse, error)
	GetAll(ctx context.Context) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
