package book_appointment

import (
	"time"

	"github.com/dkoval85/appointment-service/pkg/types"
)

// Request модель публичного запроса на запись
// Клиент не обязан иметь учетную запись - контактные данные передаются напрямую
type Request struct {
	EmployeeID  int64            // ID сотрудника
	ServiceID   int64            // ID услуги
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала HH:MM, должно лежать на сетке слотов
	ClientName  string           // Имя клиента
	ClientEmail string           // Email клиента
	ClientPhone string           // Телефон клиента (опционально)
	Notes       *string          // Заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	EmployeeID      int64
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
}
