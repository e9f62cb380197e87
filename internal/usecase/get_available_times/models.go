package get_available_times

import (
	"time"

	"github.com/dkoval85/appointment-service/pkg/types"
)

// Request модель запроса на получение доступных времен начала
type Request struct {
	EmployeeID int64     // ID сотрудника
	ServiceID  int64     // ID услуги (определяет длительность слота)
	Date       time.Time // Дата записи (без времени)
}

// Response модель ответа со списком доступных времен начала
// Пустой список - корректный ответ "нет слотов", не ошибка
type Response struct {
	Date            time.Time
	EmployeeID      int64
	ServiceID       int64
	DurationMinutes int                // Длительность услуги
	AvailableTimes  []types.TimeString // Времена начала в хронологическом порядке
}
