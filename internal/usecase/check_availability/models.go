package check_availability

import (
	"time"

	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/pkg/types"
)

// Request модель запроса проверки доступности интервала
type Request struct {
	EmployeeID      int64            // ID сотрудника
	Date            time.Time        // Дата проверки
	Start           types.TimeString // Начало интервала HH:MM
	DurationMinutes int              // Длительность в минутах
}

// Response модель ответа с вердиктом доступности.
// Проверка консультативная: к моменту фактической записи картина может
// измениться, авторитетная проверка выполняется при создании записи.
type Response struct {
	IsAvailable       bool
	Interval          domain.TimeInterval
	Conflicting       *domain.Appointment
	CancelledOverlaps []*domain.Appointment
}
