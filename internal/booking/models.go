package booking

import (
	"time"

	"github.com/dkoval85/appointment-service/pkg/types"
)

// Step шаг пошагового сценария публичной записи
type Step string

const (
	// StepService выбор услуги
	StepService Step = "service"
	// StepEmployee выбор сотрудника
	StepEmployee Step = "employee"
	// StepDateTime выбор даты и времени
	StepDateTime Step = "datetime"
	// StepContact ввод контактных данных
	StepContact Step = "contact"
	// StepConfirm подтверждение записи
	StepConfirm Step = "confirm"
	// StepDone запись создана, сценарий завершен
	StepDone Step = "done"
)

// nextStep переходы сценария в прямом порядке
var nextStep = map[Step]Step{
	StepService:  StepEmployee,
	StepEmployee: StepDateTime,
	StepDateTime: StepContact,
	StepContact:  StepConfirm,
	StepConfirm:  StepDone,
}

// Session состояние одного сценария публичной записи
// Живет в памяти до истечения TTL или успешного подтверждения
type Session struct {
	ID   string
	Step Step

	ServiceID  int64
	EmployeeID int64

	Date      time.Time
	StartTime types.TimeString

	ClientName  string
	ClientEmail string
	ClientPhone string
	Notes       *string

	// Заполняется после успешного подтверждения
	AppointmentID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired проверяет, истек ли срок жизни сессии
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// IsDone returns true if the flow has produced an appointment
func (s *Session) IsDone() bool {
	return s.Step == StepDone
}

// clone возвращает копию сессии, чтобы хранилище не отдавало внутреннее состояние
func (s *Session) clone() *Session {
	copied := *s
	return &copied
}
