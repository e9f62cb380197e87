package get_day_availability

import (
	"context"

	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/internal/integrations/directory"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	GetConfigWithHierarchy(ctx context.Context, employeeID *int64) (*domain.ScheduleConfig, error)
}

// DirectoryClient интерфейс клиента каталога услуг и сотрудников
type DirectoryClient interface {
	GetService(ctx context.Context, serviceID int64) (*directory.Service, error)
	GetEmployee(ctx context.Context, employeeID int64) (*directory.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
