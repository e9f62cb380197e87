package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval возвращается при попытке создать интервал с start >= end
	// или с некорректным форматом времени
	ErrInvalidInterval = errors.New("domain: invalid time interval")

	// ErrInvalidStatus возвращается при неизвестном статусе записи
	ErrInvalidStatus = errors.New("domain: invalid appointment status")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrImmutableAppointment возвращается при попытке изменить завершенную запись
	// Завершенные записи - финансовые/исторические данные, любая мутация запрещена
	ErrImmutableAppointment = errors.New("domain: completed appointment is immutable")

	// ErrSchedulingConflict возвращается, когда интервал пересекается с активной записью
	ErrSchedulingConflict = errors.New("domain: scheduling conflict")
)

// ConflictError ошибка пересечения с существующей записью
// Несет конфликтующую запись, чтобы вызывающая сторона могла показать её пользователю
type ConflictError struct {
	Conflicting *Appointment
}

// Error реализует error
func (e *ConflictError) Error() string {
	if e.Conflicting == nil {
		return ErrSchedulingConflict.Error()
	}
	return fmt.Sprintf("%s: employee %d already has appointment %d at %s",
		ErrSchedulingConflict, e.Conflicting.EmployeeID, e.Conflicting.ID, e.Conflicting.Interval)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrSchedulingConflict)
func (e *ConflictError) Unwrap() error {
	return ErrSchedulingConflict
}

// NewConflictError создает ошибку конфликта с конфликтующей записью
func NewConflictError(conflicting *Appointment) *ConflictError {
	return &ConflictError{Conflicting: conflicting}
}
