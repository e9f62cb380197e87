package create_appointment

import (
	"context"
	"time"

	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/internal/integrations/clientservice"
	"github.com/dkoval85/appointment-service/internal/integrations/directory"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
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

// ClientServiceClient интерфейс клиента сервиса клиентов
type ClientServiceClient interface {
	GetClient(ctx context.Context, clientID int64) (*clientservice.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
