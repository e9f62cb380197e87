package schedule

import (
	"context"

	"github.com/dkoval85/appointment-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	GetConfigWithHierarchy(ctx context.Context, employeeID *int64) (*domain.ScheduleConfig, error)
	GetAll(ctx context.Context) ([]*domain.ScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
