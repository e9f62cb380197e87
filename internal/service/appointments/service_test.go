package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval85/appointment-service/internal/domain"
	appointmentRepo "github.com/dkoval85/appointment-service/internal/infra/storage/appointment"
	"github.com/dkoval85/appointment-service/internal/service/appointments/models"
	"github.com/dkoval85/appointment-service/pkg/types"
)

// Моки зависимостей

type mockRepo struct {
	byID     *domain.Appointment
	byIDErr  error
	filtered []*domain.Appointment

	updatedStatus   *domain.AppointmentStatus
	cancelledReason *string
	rescheduled     *domain.Appointment
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if m.byIDErr != nil {
		return nil, m.byIDErr
	}
	return m.byID, nil
}

func (m *mockRepo) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return m.filtered, nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	m.updatedStatus = &status
	return nil
}

func (m *mockRepo) Cancel(ctx context.Context, id int64, reason string) error {
	m.cancelledReason = &reason
	return nil
}

func (m *mockRepo) Reschedule(ctx context.Context, id int64, appt *domain.Appointment) error {
	m.rescheduled = appt
	return nil
}

type mockTxManager struct{}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// Фикстуры

var apptDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func makeAppointment(t *testing.T, id int64, start, end string, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()
	interval, err := domain.NewTimeInterval(types.TimeString(start), types.TimeString(end))
	require.NoError(t, err)
	return &domain.Appointment{
		ID:         id,
		EmployeeID: 7,
		ServiceID:  3,
		Date:       apptDate,
		Interval:   interval,
		Status:     status,
	}
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, &mockTxManager{}, noopLogger{})
}

func TestGetByID(t *testing.T) {
	svc := newTestService(&mockRepo{byID: makeAppointment(t, 1, "10:00", "11:00", domain.StatusConfirmed)})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockRepo{byIDErr: appointmentRepo.ErrAppointmentNotFound})

	_, err := svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateStatus(t *testing.T) {
	repo := &mockRepo{byID: makeAppointment(t, 1, "10:00", "11:00", domain.StatusPending)}
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := newTestService(&mockRepo{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_CompletedImmutable(t *testing.T) {
	svc := newTestService(&mockRepo{byID: makeAppointment(t, 1, "10:00", "11:00", domain.StatusCompleted)})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrImmutable)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	svc := newTestService(&mockRepo{byID: makeAppointment(t, 1, "10:00", "11:00", domain.StatusConfirmed)})

	// Возврат confirmed -> pending запрещен
	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	repo := &mockRepo{byID: makeAppointment(t, 1, "10:00", "11:00", domain.StatusConfirmed)}
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{CancellationReason: "клиент заболел"})
	require.NoError(t, err)
	require.NotNil(t, repo.cancelledReason)
	assert.Equal(t, "клиент заболел", *repo.cancelledReason)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	svc := newTestService(&mockRepo{byID: makeAppointment(t, 1, "10:00", "11:00", domain.StatusCancelled)})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_CompletedImmutable(t *testing.T) {
	svc := newTestService(&mockRepo{byID: makeAppointment(t, 1, "10:00", "11:00", domain.StatusCompleted)})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{})
	assert.ErrorIs(t, err, ErrImmutable)
}

func TestReschedule(t *testing.T) {
	repo := &mockRepo{byID: makeAppointment(t, 1, "10:00", "11:00", domain.StatusConfirmed)}
	svc := newTestService(repo)

	newDate := apptDate.AddDate(0, 0, 1)
	resp, err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date:      newDate,
		StartTime: "14:00",
	})
	require.NoError(t, err)

	// Длительность сохраняется
	assert.Equal(t, "14:00", resp.StartTime)
	assert.Equal(t, "15:00", resp.EndTime)
	assert.Equal(t, newDate.Format(domain.DateFormat), resp.Date)

	require.NotNil(t, repo.rescheduled)
	assert.Equal(t, domain.StatusConfirmed, repo.rescheduled.Status)
}

func TestReschedule_Conflict(t *testing.T) {
	repo := &mockRepo{
		byID: makeAppointment(t, 1, "10:00", "11:00", domain.StatusConfirmed),
		filtered: []*domain.Appointment{
			makeAppointment(t, 2, "14:00", "15:00", domain.StatusConfirmed),
		},
	}
	svc := newTestService(repo)

	_, err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date:      apptDate,
		StartTime: "14:30",
	})
	assert.ErrorIs(t, err, domain.ErrSchedulingConflict)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, int64(2), conflictErr.Conflicting.ID)
}

func TestReschedule_DoesNotConflictWithItself(t *testing.T) {
	appt := makeAppointment(t, 1, "10:00", "11:00", domain.StatusConfirmed)
	repo := &mockRepo{
		byID:     appt,
		filtered: []*domain.Appointment{appt},
	}
	svc := newTestService(repo)

	// Сдвиг на полчаса внутри собственного интервала
	_, err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date:      apptDate,
		StartTime: "10:30",
	})
	assert.NoError(t, err)
}

func TestReschedule_Immutable(t *testing.T) {
	svc := newTestService(&mockRepo{byID: makeAppointment(t, 1, "10:00", "11:00", domain.StatusCompleted)})

	_, err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date:      apptDate,
		StartTime: "14:00",
	})
	assert.ErrorIs(t, err, ErrImmutable)
}

func TestReschedule_InvalidTime(t *testing.T) {
	svc := newTestService(&mockRepo{byID: makeAppointment(t, 1, "10:00", "11:00", domain.StatusConfirmed)})

	_, err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date:      apptDate,
		StartTime: "14:70",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetEmployeeAppointments_InvalidEmployee(t *testing.T) {
	svc := newTestService(&mockRepo{})

	_, err := svc.GetEmployeeAppointments(context.Background(), &models.GetEmployeeAppointmentsRequest{EmployeeID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetClientAppointments(t *testing.T) {
	repo := &mockRepo{filtered: []*domain.Appointment{
		makeAppointment(t, 1, "10:00", "11:00", domain.StatusCancelled),
		makeAppointment(t, 2, "12:00", "13:00", domain.StatusCompleted),
	}}
	svc := newTestService(repo)

	resp, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{ClientID: 5})
	require.NoError(t, err)
	// История включает отмененные и завершенные записи
	assert.Len(t, resp.Appointments, 2)
}
