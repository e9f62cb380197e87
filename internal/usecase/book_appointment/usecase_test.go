package book_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval85/appointment-service/internal/domain"
	directoryClient "github.com/dkoval85/appointment-service/internal/integrations/directory"
	"github.com/dkoval85/appointment-service/pkg/ptr"
	"github.com/dkoval85/appointment-service/pkg/types"
)

// Моки зависимостей

type mockAppointmentRepo struct {
	appointments []*domain.Appointment
	created      *domain.Appointment
	createErr    error
	filterErr    error
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	created := *appt
	created.ID = 101
	m.created = &created
	return &created, nil
}

func (m *mockAppointmentRepo) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if m.filterErr != nil {
		return nil, m.filterErr
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

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
	bookingDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	dayBefore   = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
)

func defaultConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ID:                      1,
		WorkdayStart:            "09:00",
		WorkdayEnd:              "18:00",
		SlotGranularityMinutes:  30,
		MinBookingNoticeMinutes: 60,
		AdvanceBookingDays:      30,
	}
}

func activeDirectory() *mockDirectory {
	return &mockDirectory{
		service:  &directoryClient.Service{ID: 3, Name: "Стрижка", DurationMinutes: 60, Price: ptr.Ptr(1500.0), IsActive: true},
		employee: &directoryClient.Employee{ID: 7, IsActive: true, ServiceIDs: []int64{3}},
	}
}

func validRequest() *Request {
	return &Request{
		EmployeeID:  7,
		ServiceID:   3,
		Date:        bookingDate,
		StartTime:   "10:00",
		ClientName:  "Анна Иванова",
		ClientEmail: "anna@example.com",
		ClientPhone: "+79001234567",
	}
}

func newTestUseCase(repo *mockAppointmentRepo, schedule *mockScheduleRepo, dir *mockDirectory, now time.Time, status domain.AppointmentStatus) *UseCase {
	uc := NewUseCase(repo, schedule, dir, &mockTxManager{}, status, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	repo := &mockAppointmentRepo{}
	uc := newTestUseCase(repo, &mockScheduleRepo{config: defaultConfig()}, activeDirectory(), dayBefore, domain.StatusPending)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)

	// Публичная запись не привязана к учетной записи клиента
	require.NotNil(t, repo.created)
	assert.Nil(t, repo.created.ClientID)
}

func TestExecute_PublicStatusConfigurable(t *testing.T) {
	repo := &mockAppointmentRepo{}
	uc := newTestUseCase(repo, &mockScheduleRepo{config: defaultConfig()}, activeDirectory(), dayBefore, domain.StatusConfirmed)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: defaultConfig()}, activeDirectory(), dayBefore, domain.StatusPending)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing employee", mutate: func(r *Request) { r.EmployeeID = 0 }},
		{name: "missing service", mutate: func(r *Request) { r.ServiceID = 0 }},
		{name: "missing date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "missing startTime", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "bad startTime", mutate: func(r *Request) { r.StartTime = "25:00" }},
		{name: "missing name", mutate: func(r *Request) { r.ClientName = "   " }},
		{name: "missing email", mutate: func(r *Request) { r.ClientEmail = "" }},
		{name: "bad email", mutate: func(r *Request) { r.ClientEmail = "not-an-email" }},
		{name: "missing phone", mutate: func(r *Request) { r.ClientPhone = "" }},
		{name: "blank phone", mutate: func(r *Request) { r.ClientPhone = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_InactiveServiceInvisible(t *testing.T) {
	dir := activeDirectory()
	dir.service.IsActive = false
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: defaultConfig()}, dir, dayBefore, domain.StatusPending)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveEmployeeInvisible(t *testing.T) {
	dir := activeDirectory()
	dir.employee.IsActive = false
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: defaultConfig()}, dir, dayBefore, domain.StatusPending)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecute_ServiceNotProvided(t *testing.T) {
	dir := activeDirectory()
	dir.employee.ServiceIDs = []int64{99}
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: defaultConfig()}, dir, dayBefore, domain.StatusPending)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotProvided)
}

func TestExecute_DateValidation(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: defaultConfig()}, activeDirectory(), dayBefore, domain.StatusPending)

	t.Run("past date", func(t *testing.T) {
		req := validRequest()
		req.Date = dayBefore.AddDate(0, 0, -1)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("too far in future", func(t *testing.T) {
		req := validRequest()
		req.Date = dayBefore.AddDate(0, 0, 31)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})
}

func TestExecute_TimeValidation(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: defaultConfig()}, activeDirectory(), dayBefore, domain.StatusPending)

	t.Run("off grid", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "10:15"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTimeNotOnGrid)
	})

	t.Run("before workday start", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "08:30"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTimeNotOnGrid)
	})

	t.Run("interval past workday end", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "17:30"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})
}

func TestExecute_MinBookingNotice(t *testing.T) {
	// Сейчас 09:30 дня записи, minNotice 60 минут
	sameDay := time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockScheduleRepo{config: defaultConfig()}, activeDirectory(), sameDay, domain.StatusPending)

	req := validRequest()
	req.StartTime = "10:00"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	req.StartTime = "10:30"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_Conflict(t *testing.T) {
	occupied, err := domain.NewTimeInterval("10:00", "11:00")
	require.NoError(t, err)

	repo := &mockAppointmentRepo{
		appointments: []*domain.Appointment{{
			ID:         55,
			EmployeeID: 7,
			Date:       bookingDate,
			Interval:   occupied,
			Status:     domain.StatusConfirmed,
		}},
	}
	uc := newTestUseCase(repo, &mockScheduleRepo{config: defaultConfig()}, activeDirectory(), dayBefore, domain.StatusPending)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrSchedulingConflict)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, int64(55), conflictErr.Conflicting.ID)
}

func TestExecute_CancelledDoesNotBlock(t *testing.T) {
	occupied, err := domain.NewTimeInterval("10:00", "11:00")
	require.NoError(t, err)

	repo := &mockAppointmentRepo{
		appointments: []*domain.Appointment{{
			ID:         55,
			EmployeeID: 7,
			Date:       bookingDate,
			Interval:   occupied,
			Status:     domain.StatusCancelled,
		}},
	}
	uc := newTestUseCase(repo, &mockScheduleRepo{config: defaultConfig()}, activeDirectory(), dayBefore, domain.StatusPending)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}
