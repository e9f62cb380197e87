package get_available_times

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval85/appointment-service/internal/domain"
	directoryClient "github.com/dkoval85/appointment-service/internal/integrations/directory"
	"github.com/dkoval85/appointment-service/pkg/types"
)

// Моки зависимостей

type mockAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (m *mockAppointmentRepo) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.appointments, nil
}

type mockScheduleRepo struct {
	config *domain.ScheduleConfig
	err    error
}

func (m *mockScheduleRepo) GetConfigWithHierarchy(ctx context.Context, employeeID *int64) (*domain.ScheduleConfig, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.config, nil
}

type mockDirectory struct {
	service     *directoryClient.Service
	serviceErr  error
	employee    *directoryClient.Employee
	employeeErr error
}

func (m *mockDirectory) GetService(ctx context.Context, serviceID int64) (*directoryClient.Service, error) {
	if m.serviceErr != nil {
		return nil, m.serviceErr
	}
	return m.service, nil
}

func (m *mockDirectory) GetEmployee(ctx context.Context, employeeID int64) (*directoryClient.Employee, error) {
	if m.employeeErr != nil {
		return nil, m.employeeErr
	}
	return m.employee, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// Фикстуры

var (
	slotsDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	dayBefore = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
)

func shortDayConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ID:                     1,
		WorkdayStart:           "09:00",
		WorkdayEnd:             "12:00",
		SlotGranularityMinutes: 30,
	}
}

func activeDirectory() *mockDirectory {
	return &mockDirectory{
		service:  &directoryClient.Service{ID: 3, DurationMinutes: 60, IsActive: true},
		employee: &directoryClient.Employee{ID: 7, IsActive: true, ServiceIDs: []int64{3}},
	}
}

func newTestUseCase(repo *mockAppointmentRepo, schedule *mockScheduleRepo, dir *mockDirectory, now time.Time) *UseCase {
	uc := NewUseCase(repo, schedule, dir, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: shortDayConfig()}, activeDirectory(), dayBefore)

	resp, err := uc.Execute(context.Background(), &Request{EmployeeID: 7, ServiceID: 3, Date: slotsDate})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}, resp.AvailableTimes)
}

func TestExecute_OccupiedSlotsExcluded(t *testing.T) {
	occupied, err := domain.NewTimeInterval("10:00", "11:00")
	require.NoError(t, err)

	repo := &mockAppointmentRepo{appointments: []*domain.Appointment{{
		ID:         1,
		EmployeeID: 7,
		Date:       slotsDate,
		Interval:   occupied,
		Status:     domain.StatusConfirmed,
	}}}
	uc := newTestUseCase(repo, &mockScheduleRepo{config: shortDayConfig()}, activeDirectory(), dayBefore)

	resp, err := uc.Execute(context.Background(), &Request{EmployeeID: 7, ServiceID: 3, Date: slotsDate})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, resp.AvailableTimes)
}

func TestExecute_InactiveServiceGivesEmptyList(t *testing.T) {
	dir := activeDirectory()
	dir.service.IsActive = false
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: shortDayConfig()}, dir, dayBefore)

	// Неактивная услуга дает пустой список, а не ошибку
	resp, err := uc.Execute(context.Background(), &Request{EmployeeID: 7, ServiceID: 3, Date: slotsDate})
	require.NoError(t, err)
	assert.Empty(t, resp.AvailableTimes)
}

func TestExecute_InactiveEmployeeGivesEmptyList(t *testing.T) {
	dir := activeDirectory()
	dir.employee.IsActive = false
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: shortDayConfig()}, dir, dayBefore)

	resp, err := uc.Execute(context.Background(), &Request{EmployeeID: 7, ServiceID: 3, Date: slotsDate})
	require.NoError(t, err)
	assert.Empty(t, resp.AvailableTimes)
}

func TestExecute_ServiceNotProvidedGivesEmptyList(t *testing.T) {
	dir := activeDirectory()
	dir.employee.ServiceIDs = []int64{99}
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: shortDayConfig()}, dir, dayBefore)

	resp, err := uc.Execute(context.Background(), &Request{EmployeeID: 7, ServiceID: 3, Date: slotsDate})
	require.NoError(t, err)
	assert.Empty(t, resp.AvailableTimes)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	dir := activeDirectory()
	dir.serviceErr = directoryClient.ErrServiceNotFound
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: shortDayConfig()}, dir, dayBefore)

	_, err := uc.Execute(context.Background(), &Request{EmployeeID: 7, ServiceID: 3, Date: slotsDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DefaultConfigWhenMissing(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: nil}, activeDirectory(), dayBefore)

	// Нет конфигурации - используются дефолты 09:00-18:00 с шагом 30
	resp, err := uc.Execute(context.Background(), &Request{EmployeeID: 7, ServiceID: 3, Date: slotsDate})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AvailableTimes)
	assert.Equal(t, types.TimeString("09:00"), resp.AvailableTimes[0])
	assert.Equal(t, types.TimeString("17:00"), resp.AvailableTimes[len(resp.AvailableTimes)-1])
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: shortDayConfig()}, activeDirectory(), dayBefore)

	_, err := uc.Execute(context.Background(), &Request{EmployeeID: 0, ServiceID: 3, Date: slotsDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{EmployeeID: 7, ServiceID: 0, Date: slotsDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{EmployeeID: 7, ServiceID: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
