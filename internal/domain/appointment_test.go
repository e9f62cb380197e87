package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "cancelled", "completed"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, AppointmentStatus(valid), status)
	}

	_, err := ParseStatus("unknown")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAppointmentStatus_IsActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, StatusCompleted.IsActive())
}

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		// Возврат в pending запрещен
		{StatusConfirmed, StatusPending, false},
		// Терминальные статусы
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		// Переход в себя не входит в таблицу
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestAppointment_ValidateTransition(t *testing.T) {
	appt := &Appointment{ID: 1, Status: StatusPending}

	assert.NoError(t, appt.ValidateTransition(StatusConfirmed))

	// Завершенная запись неизменяема независимо от целевого статуса
	completed := &Appointment{ID: 2, Status: StatusCompleted}
	err := completed.ValidateTransition(StatusCancelled)
	assert.ErrorIs(t, err, ErrImmutableAppointment)

	// Недопустимый переход
	confirmed := &Appointment{ID: 3, Status: StatusConfirmed}
	err = confirmed.ValidateTransition(StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Неизвестный целевой статус
	err = appt.ValidateTransition(AppointmentStatus("bogus"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAppointment_ValidateMutation(t *testing.T) {
	assert.NoError(t, (&Appointment{Status: StatusPending}).ValidateMutation())
	assert.NoError(t, (&Appointment{Status: StatusConfirmed}).ValidateMutation())

	err := (&Appointment{Status: StatusCompleted}).ValidateMutation()
	assert.ErrorIs(t, err, ErrImmutableAppointment)

	err = (&Appointment{Status: StatusCancelled}).ValidateMutation()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Appointment{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusCancelled}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusCompleted}).CanBeCancelled())
}

func TestConflictError(t *testing.T) {
	conflicting := &Appointment{
		ID:         42,
		EmployeeID: 7,
		Date:       time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Interval:   mustInterval(t, "10:00", "11:00"),
		Status:     StatusConfirmed,
	}

	err := NewConflictError(conflicting)

	// Распаковывается в сентинел
	assert.ErrorIs(t, err, ErrSchedulingConflict)

	// Конфликтующая запись достается через errors.As
	var conflictErr *ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, int64(42), conflictErr.Conflicting.ID)

	// Без записи тоже валидная ошибка
	empty := NewConflictError(nil)
	assert.ErrorIs(t, empty, ErrSchedulingConflict)
	assert.NotEmpty(t, empty.Error())
}
