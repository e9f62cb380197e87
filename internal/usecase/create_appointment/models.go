package create_appointment

import (
	"time"

	"github.com/dkoval85/appointment-service/pkg/types"
)

// Request модель запроса на создание записи сотрудником
type Request struct {
	EmployeeID int64            // ID сотрудника
	ClientID   int64            // ID клиента
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала HH:MM
	Notes      *string          // Заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	EmployeeID      int64
	ClientID        *int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	ServiceName     string
	ServicePrice    float64
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
