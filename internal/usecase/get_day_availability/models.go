package get_day_availability

import (
	"time"

	"github.com/dkoval85/appointment-service/internal/domain"
)

// Request модель запроса на расчет доступности дня
type Request struct {
	EmployeeID int64     // ID сотрудника
	ServiceID  int64     // ID услуги (определяет длину окна)
	Date       time.Time // Дата (без времени)
}

// Response модель ответа с полной картиной дня
// Возвращаются ВСЕ блоки - и свободные, и занятые; занятые несут
// конфликтующую запись, чтобы календарь мог показать, чем занят слот
type Response struct {
	Date            time.Time
	EmployeeID      int64
	ServiceID       int64
	DurationMinutes int
	Blocks          []domain.TimeBlock
}
