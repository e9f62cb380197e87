package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval85/appointment-service/internal/domain"
	directoryClient "github.com/dkoval85/appointment-service/internal/integrations/directory"
	"github.com/dkoval85/appointment-service/internal/usecase/book_appointment"
	"github.com/dkoval85/appointment-service/internal/usecase/get_available_times"
	"github.com/dkoval85/appointment-service/pkg/types"
)

// Моки коллабораторов сценария

type mockBooker struct {
	resp *book_appointment.Response
	err  error

	lastRequest *book_appointment.Request
}

func (m *mockBooker) Execute(ctx context.Context, req *book_appointment.Request) (*book_appointment.Response, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type mockAvailableTimes struct {
	times []types.TimeString
	err   error
}

func (m *mockAvailableTimes) Execute(ctx context.Context, req *get_available_times.Request) (*get_available_times.Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &get_available_times.Response{
		Date:           req.Date,
		EmployeeID:     req.EmployeeID,
		ServiceID:      req.ServiceID,
		AvailableTimes: m.times,
	}, nil
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

func newTestFlow(t *testing.T, booker *mockBooker, availableTimes *mockAvailableTimes, dir *mockDirectory) (*Flow, *Store) {
	t.Helper()

	store := NewStore(30 * time.Minute)
	t.Cleanup(store.Close)

	flow := NewFlow(store, booker, availableTimes, dir, noopLogger{})
	flow.timeProvider = &fixedTimeProvider{now: time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)}

	return flow, store
}

func activeDirectory() *mockDirectory {
	return &mockDirectory{
		service:  &directoryClient.Service{ID: 3, IsActive: true, DurationMinutes: 60},
		employee: &directoryClient.Employee{ID: 7, IsActive: true, ServiceIDs: []int64{3}},
	}
}

// advanceToContact проводит сессию до шага подтверждения
func advanceToContact(t *testing.T, flow *Flow, ctx context.Context) *Session {
	t.Helper()

	session, err := flow.Start(ctx)
	require.NoError(t, err)

	_, err = flow.SelectService(ctx, session.ID, 3)
	require.NoError(t, err)

	_, err = flow.SelectEmployee(ctx, session.ID, 7)
	require.NoError(t, err)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	_, err = flow.SelectDateTime(ctx, session.ID, date, "10:00")
	require.NoError(t, err)

	result, err := flow.SetContact(ctx, session.ID, "Анна Иванова", "anna@example.com", "+79001234567", nil)
	require.NoError(t, err)

	return result
}

func TestFlow_HappyPath(t *testing.T) {
	ctx := context.Background()
	booker := &mockBooker{resp: &book_appointment.Response{ID: 101}}
	flow, _ := newTestFlow(t, booker, &mockAvailableTimes{times: []types.TimeString{"10:00", "11:00"}}, activeDirectory())

	session := advanceToContact(t, flow, ctx)
	assert.Equal(t, StepConfirm, session.Step)

	confirmed, err := flow.Confirm(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, StepDone, confirmed.Step)
	require.NotNil(t, confirmed.AppointmentID)
	assert.Equal(t, int64(101), *confirmed.AppointmentID)

	// Запрос на запись собран из состояния сессии
	require.NotNil(t, booker.lastRequest)
	assert.Equal(t, int64(7), booker.lastRequest.EmployeeID)
	assert.Equal(t, int64(3), booker.lastRequest.ServiceID)
	assert.Equal(t, types.TimeString("10:00"), booker.lastRequest.StartTime)
	assert.Equal(t, "Анна Иванова", booker.lastRequest.ClientName)
}

func TestFlow_StepOrderEnforced(t *testing.T) {
	ctx := context.Background()
	flow, _ := newTestFlow(t, &mockBooker{}, &mockAvailableTimes{}, activeDirectory())

	session, err := flow.Start(ctx)
	require.NoError(t, err)

	// Пропуск шага выбора услуги
	_, err = flow.SelectEmployee(ctx, session.ID, 7)
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = flow.Confirm(ctx, session.ID)
	assert.ErrorIs(t, err, ErrInvalidStep)

	// Повтор уже пройденного шага
	_, err = flow.SelectService(ctx, session.ID, 3)
	require.NoError(t, err)
	_, err = flow.SelectService(ctx, session.ID, 3)
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestFlow_UnknownSession(t *testing.T) {
	ctx := context.Background()
	flow, _ := newTestFlow(t, &mockBooker{}, &mockAvailableTimes{}, activeDirectory())

	_, err := flow.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = flow.SelectService(ctx, "missing", 3)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFlow_SelectService_Inactive(t *testing.T) {
	ctx := context.Background()
	dir := activeDirectory()
	dir.service.IsActive = false
	flow, _ := newTestFlow(t, &mockBooker{}, &mockAvailableTimes{}, dir)

	session, err := flow.Start(ctx)
	require.NoError(t, err)

	_, err = flow.SelectService(ctx, session.ID, 3)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestFlow_SelectEmployee_DoesNotProvideService(t *testing.T) {
	ctx := context.Background()
	dir := activeDirectory()
	dir.employee.ServiceIDs = []int64{99}
	flow, _ := newTestFlow(t, &mockBooker{}, &mockAvailableTimes{}, dir)

	session, err := flow.Start(ctx)
	require.NoError(t, err)
	_, err = flow.SelectService(ctx, session.ID, 3)
	require.NoError(t, err)

	_, err = flow.SelectEmployee(ctx, session.ID, 7)
	assert.ErrorIs(t, err, ErrServiceNotProvided)
}

func TestFlow_SelectDateTime_NotInAvailableList(t *testing.T) {
	ctx := context.Background()
	flow, _ := newTestFlow(t, &mockBooker{}, &mockAvailableTimes{times: []types.TimeString{"09:00"}}, activeDirectory())

	session, err := flow.Start(ctx)
	require.NoError(t, err)
	_, err = flow.SelectService(ctx, session.ID, 3)
	require.NoError(t, err)
	_, err = flow.SelectEmployee(ctx, session.ID, 7)
	require.NoError(t, err)

	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	_, err = flow.SelectDateTime(ctx, session.ID, date, "10:00")
	assert.ErrorIs(t, err, ErrTimeNotAvailable)
}

func TestFlow_ConfirmConflictReturnsToDateTime(t *testing.T) {
	ctx := context.Background()
	conflicting := &domain.Appointment{ID: 55}
	booker := &mockBooker{err: domain.NewConflictError(conflicting)}
	flow, _ := newTestFlow(t, booker, &mockAvailableTimes{times: []types.TimeString{"10:00"}}, activeDirectory())

	session := advanceToContact(t, flow, ctx)

	_, err := flow.Confirm(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSchedulingConflict)

	// Сессия вернулась на шаг выбора времени, услуга/сотрудник/контакты сохранены
	got, err := flow.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepDateTime, got.Step)
	assert.True(t, got.StartTime.IsZero())
	assert.Equal(t, int64(3), got.ServiceID)
	assert.Equal(t, int64(7), got.EmployeeID)
	assert.Equal(t, "Анна Иванова", got.ClientName)
	assert.Nil(t, got.AppointmentID)
}

func TestFlow_CompletedSessionRejectsSteps(t *testing.T) {
	ctx := context.Background()
	booker := &mockBooker{resp: &book_appointment.Response{ID: 101}}
	flow, _ := newTestFlow(t, booker, &mockAvailableTimes{times: []types.TimeString{"10:00"}}, activeDirectory())

	session := advanceToContact(t, flow, ctx)
	_, err := flow.Confirm(ctx, session.ID)
	require.NoError(t, err)

	_, err = flow.Confirm(ctx, session.ID)
	assert.ErrorIs(t, err, ErrFlowCompleted)

	_, err = flow.SelectService(ctx, session.ID, 3)
	assert.ErrorIs(t, err, ErrFlowCompleted)
}

func TestFlow_SetContact_EmptyFields(t *testing.T) {
	ctx := context.Background()
	flow, _ := newTestFlow(t, &mockBooker{}, &mockAvailableTimes{times: []types.TimeString{"10:00"}}, activeDirectory())

	session, err := flow.Start(ctx)
	require.NoError(t, err)
	_, err = flow.SelectService(ctx, session.ID, 3)
	require.NoError(t, err)
	_, err = flow.SelectEmployee(ctx, session.ID, 7)
	require.NoError(t, err)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	_, err = flow.SelectDateTime(ctx, session.ID, date, "10:00")
	require.NoError(t, err)

	_, err = flow.SetContact(ctx, session.ID, "  ", "anna@example.com", "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = flow.SetContact(ctx, session.ID, "Анна", "", "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Телефон обязателен наравне с именем и email
	_, err = flow.SetContact(ctx, session.ID, "Анна", "anna@example.com", "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = flow.SetContact(ctx, session.ID, "Анна", "anna@example.com", "   ", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Сессия не продвинулась дальше шага контактов
	got, err := flow.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepContact, got.Step)
}
