package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkoval85/appointment-service/internal/domain"
	directoryClient "github.com/dkoval85/appointment-service/internal/integrations/directory"
	"github.com/dkoval85/appointment-service/internal/usecase/book_appointment"
	"github.com/dkoval85/appointment-service/internal/usecase/get_available_times"
	"github.com/dkoval85/appointment-service/pkg/types"
)

// Flow пошаговый сценарий публичной записи:
// услуга -> сотрудник -> дата/время -> контакты -> подтверждение.
//
// Каждый шаг валидируется в момент выбора, но авторитетная проверка
// происходит только при подтверждении. Если к этому моменту слот уже
// занят, сценарий возвращается на шаг выбора даты/времени с сохранением
// услуги, сотрудника и контактов.
type Flow struct {
	store          *Store
	booker         Booker
	availableTimes AvailableTimesProvider
	directory      DirectoryClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewFlow создает новый сценарий публичной записи
func NewFlow(
	store *Store,
	booker Booker,
	availableTimes AvailableTimesProvider,
	directory DirectoryClient,
	logger Logger,
) *Flow {
	return &Flow{
		store:          store,
		booker:         booker,
		availableTimes: availableTimes,
		directory:      directory,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Start начинает новый сценарий записи
func (f *Flow) Start(ctx context.Context) (*Session, error) {
	session, err := f.store.Create(f.timeProvider.Now())
	if err != nil {
		f.logger.Error("Flow.Start: failed to create session: %v", err)
		return nil, err
	}

	f.logger.Info("Flow.Start: created session id=%s", session.ID)
	return session, nil
}

// Get возвращает текущее состояние сессии
func (f *Flow) Get(ctx context.Context, sessionID string) (*Session, error) {
	return f.store.Get(sessionID, f.timeProvider.Now())
}

// SelectService выбирает услугу (первый шаг сценария)
func (f *Flow) SelectService(ctx context.Context, sessionID string, serviceID int64) (*Session, error) {
	session, err := f.loadAt(sessionID, StepService)
	if err != nil {
		return nil, err
	}

	if serviceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	service, err := f.directory.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			f.logger.Warn("Flow.SelectService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		f.logger.Error("Flow.SelectService: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		f.logger.Warn("Flow.SelectService: service id=%d is inactive", serviceID)
		return nil, ErrServiceNotFound
	}

	session.ServiceID = serviceID
	session.Step = nextStep[StepService]

	return f.save(session)
}

// SelectEmployee выбирает сотрудника, оказывающего выбранную услугу
func (f *Flow) SelectEmployee(ctx context.Context, sessionID string, employeeID int64) (*Session, error) {
	session, err := f.loadAt(sessionID, StepEmployee)
	if err != nil {
		return nil, err
	}

	if employeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	employee, err := f.directory.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrEmployeeNotFound) {
			f.logger.Warn("Flow.SelectEmployee: employee id=%d not found", employeeID)
			return nil, ErrEmployeeNotFound
		}
		f.logger.Error("Flow.SelectEmployee: failed to get employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if !employee.IsActive {
		f.logger.Warn("Flow.SelectEmployee: employee id=%d is inactive", employeeID)
		return nil, ErrEmployeeNotFound
	}
	if !employee.ProvidesService(session.ServiceID) {
		f.logger.Warn("Flow.SelectEmployee: employee id=%d does not provide service id=%d",
			employeeID, session.ServiceID)
		return nil, ErrServiceNotProvided
	}

	session.EmployeeID = employeeID
	session.Step = nextStep[StepEmployee]

	return f.save(session)
}

// SelectDateTime выбирает дату и время из доступных слотов
func (f *Flow) SelectDateTime(ctx context.Context, sessionID string, date time.Time, startTime types.TimeString) (*Session, error) {
	session, err := f.loadAt(sessionID, StepDateTime)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := startTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	// Проверяем, что выбранное время есть среди доступных слотов
	times, err := f.availableTimes.Execute(ctx, &get_available_times.Request{
		EmployeeID: session.EmployeeID,
		ServiceID:  session.ServiceID,
		Date:       date,
	})
	if err != nil {
		f.logger.Error("Flow.SelectDateTime: failed to get available times: %v", err)
		return nil, fmt.Errorf("%w: failed to get available times: %v", ErrInternal, err)
	}

	if !containsTime(times.AvailableTimes, startTime) {
		f.logger.Warn("Flow.SelectDateTime: time %s is not available for employee=%d, date=%s",
			startTime, session.EmployeeID, date.Format(domain.DateFormat))
		return nil, ErrTimeNotAvailable
	}

	session.Date = date
	session.StartTime = startTime
	session.Step = nextStep[StepDateTime]

	return f.save(session)
}

// SetContact сохраняет контактные данные клиента
func (f *Flow) SetContact(ctx context.Context, sessionID string, name, email, phone string, notes *string) (*Session, error) {
	session, err := f.loadAt(sessionID, StepContact)
	if err != nil {
		return nil, err
	}

	// Полная валидация контактов выполняется при подтверждении,
	// здесь отсекаем только очевидно пустые данные
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}
	if strings.TrimSpace(phone) == "" {
		return nil, fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	session.ClientName = name
	session.ClientEmail = email
	session.ClientPhone = phone
	session.Notes = notes
	session.Step = nextStep[StepContact]

	return f.save(session)
}

// Confirm подтверждает запись
// При конфликте слота сценарий возвращается на шаг выбора даты/времени -
// услуга, сотрудник и контакты сохраняются
func (f *Flow) Confirm(ctx context.Context, sessionID string) (*Session, error) {
	session, err := f.loadAt(sessionID, StepConfirm)
	if err != nil {
		return nil, err
	}

	resp, err := f.booker.Execute(ctx, &book_appointment.Request{
		EmployeeID:  session.EmployeeID,
		ServiceID:   session.ServiceID,
		Date:        session.Date,
		StartTime:   session.StartTime,
		ClientName:  session.ClientName,
		ClientEmail: session.ClientEmail,
		ClientPhone: session.ClientPhone,
		Notes:       session.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSchedulingConflict) {
			f.logger.Warn("Flow.Confirm: slot conflict for session id=%s, returning to datetime step", session.ID)
			session.Step = StepDateTime
			session.StartTime = ""
			if _, saveErr := f.save(session); saveErr != nil {
				f.logger.Error("Flow.Confirm: failed to reset session id=%s: %v", session.ID, saveErr)
			}
		}
		return nil, err
	}

	session.AppointmentID = &resp.ID
	session.Step = StepDone

	f.logger.Info("Flow.Confirm: session id=%s produced appointment id=%d", session.ID, resp.ID)
	return f.save(session)
}

// loadAt загружает сессию и проверяет, что она находится на ожидаемом шаге
func (f *Flow) loadAt(sessionID string, expected Step) (*Session, error) {
	session, err := f.store.Get(sessionID, f.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	if session.IsDone() {
		return nil, ErrFlowCompleted
	}
	if session.Step != expected {
		return nil, fmt.Errorf("%w: expected step %q, session is at %q", ErrInvalidStep, expected, session.Step)
	}

	return session, nil
}

// save сохраняет сессию в хранилище
func (f *Flow) save(session *Session) (*Session, error) {
	if err := f.store.Update(session, f.timeProvider.Now()); err != nil {
		return nil, err
	}
	return session, nil
}

// containsTime проверяет наличие времени в списке доступных
func containsTime(times []types.TimeString, target types.TimeString) bool {
	for _, t := range times {
		if t.Equal(target) {
			return true
		}
	}
	return false
}
