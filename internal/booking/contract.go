package booking

import (
	"context"
	"time"

	"github.com/dkoval85/appointment-service/internal/integrations/directory"
	"github.com/dkoval85/appointment-service/internal/usecase/book_appointment"
	"github.com/dkoval85/appointment-service/internal/usecase/get_available_times"
)

// Booker интерфейс создания публичной записи
type Booker interface {
	Execute(ctx context.Context, req *book_appointment.Request) (*book_appointment.Response, error)
}

// AvailableTimesProvider интерфейс генератора доступных времен
type AvailableTimesProvider interface {
	Execute(ctx context.Context, req *get_available_times.Request) (*get_available_times.Response, error)
}

// DirectoryClient интерфейс клиента каталога услуг и сотрудников
type DirectoryClient interface {
	GetService(ctx context.Context, serviceID int64) (*directory.Service, error)
	GetEmployee(ctx context.Context, employeeID int64) (*directory.Employee, error)
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
