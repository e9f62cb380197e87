package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// statusTransitions закрытая таблица допустимых переходов статусов
// Pending -> Confirmed | Cancelled | Completed
// Confirmed -> Cancelled | Completed (возврат в Pending запрещен)
// Cancelled и Completed - терминальные
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// ParseStatus парсит строку в AppointmentStatus
func ParseStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// IsValid проверяет, что статус входит в закрытое множество
func (s AppointmentStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsActive returns true if the status occupies time on the schedule
// Только pending и confirmed записи блокируют слоты
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true if no further transition is possible
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo проверяет допустимость перехода по таблице переходов
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Appointment represents a scheduled appointment: client + service + employee + time slot
type Appointment struct {
	ID         int64
	EmployeeID int64
	ClientID   *int64 // nil для публичных записей без учетной записи клиента
	ServiceID  int64
	Date       time.Time // дата записи (без времени)
	Interval   TimeInterval
	Status     AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	ClientName   string
	ClientEmail  string
	ClientPhone  string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies time on the schedule
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// IsCompleted returns true if the appointment is completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == StatusCompleted
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status.CanTransitionTo(StatusCancelled)
}

// CanBeUpdated returns true if appointment fields may still be edited
// Завершенные и отмененные записи не редактируются
func (a *Appointment) CanBeUpdated() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// ValidateTransition проверяет переход статуса
// Для завершенной записи всегда возвращает ErrImmutableAppointment,
// для прочих недопустимых переходов - ErrInvalidTransition
func (a *Appointment) ValidateTransition(target AppointmentStatus) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	if a.Status == StatusCompleted {
		return fmt.Errorf("%w: appointment %d", ErrImmutableAppointment, a.ID)
	}
	if !a.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, target)
	}
	return nil
}

// ValidateMutation проверяет, что поля записи еще можно редактировать
func (a *Appointment) ValidateMutation() error {
	if a.Status == StatusCompleted {
		return fmt.Errorf("%w: appointment %d", ErrImmutableAppointment, a.ID)
	}
	if !a.CanBeUpdated() {
		return fmt.Errorf("%w: cannot edit appointment in status %s", ErrInvalidTransition, a.Status)
	}
	return nil
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	EmployeeID      *int64             // Фильтр по сотруднику (опционально)
	ClientID        *int64             // Фильтр по клиенту (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные и завершенные записи
}
