package get_available_times

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkoval85/appointment-service/internal/domain"
	scheduleRepo "github.com/dkoval85/appointment-service/internal/infra/storage/schedule"
	directoryClient "github.com/dkoval85/appointment-service/internal/integrations/directory"
	"github.com/dkoval85/appointment-service/internal/scheduling"
	"github.com/dkoval85/appointment-service/pkg/ptr"
	"github.com/dkoval85/appointment-service/pkg/types"
)

// UseCase use case для получения доступных времен записи (публичный флоу)
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	directory       DirectoryClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	directory DirectoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		directory:       directory,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных времен
//
// Неактивная услуга или сотрудник дают пустой список, а не ошибку -
// для публичного вызывающего "нет слотов" и есть правильный сигнал
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTimes: employee=%d, service=%d, date=%s",
		req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.directory.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableTimes: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableTimes: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Info("GetAvailableTimes: service id=%d is inactive, returning no slots", req.ServiceID)
		return emptyResponse(req, service.DurationMinutes), nil
	}

	// 4. Получаем сотрудника
	employee, err := uc.directory.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrEmployeeNotFound) {
			uc.logger.Warn("GetAvailableTimes: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetAvailableTimes: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	if !employee.IsActive {
		uc.logger.Info("GetAvailableTimes: employee id=%d is inactive, returning no slots", req.EmployeeID)
		return emptyResponse(req, service.DurationMinutes), nil
	}

	// Каталог сам решает, кто какую услугу оказывает - здесь только membership-фильтр
	if !employee.ProvidesService(req.ServiceID) {
		uc.logger.Info("GetAvailableTimes: employee id=%d does not provide service id=%d, returning no slots",
			req.EmployeeID, req.ServiceID)
		return emptyResponse(req, service.DurationMinutes), nil
	}

	// 5. Получаем конфигурацию расписания с учетом иерархии
	config, err := uc.scheduleRepo.GetConfigWithHierarchy(ctx, ptr.Ptr(req.EmployeeID))
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableTimes: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultScheduleConfig()
		uc.logger.Info("GetAvailableTimes: using default schedule config for employee=%d", req.EmployeeID)
	}

	// 6. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableTimes: date validation failed: %v", err)
		return nil, err
	}

	// 7. Получаем активные записи сотрудника на дату
	filter := domain.AppointmentsFilter{
		EmployeeID:      ptr.Ptr(req.EmployeeID),
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные записи
	}

	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Генерируем доступные времена начала
	workday, err := config.Workday()
	if err != nil {
		uc.logger.Error("GetAvailableTimes: invalid workday in config id=%d: %v", config.ID, err)
		return nil, fmt.Errorf("%w: invalid workday config: %v", ErrInternal, err)
	}

	starts, err := scheduling.GenerateStartTimes(scheduling.DayParams{
		EmployeeID:         req.EmployeeID,
		Date:               req.Date,
		Appointments:       appointments,
		Workday:            workday,
		GranularityMinutes: config.SlotGranularityMinutes,
		DurationMinutes:    service.DurationMinutes,
	}, now, config.MinBookingNoticeMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to generate start times: %v", err)
		return nil, fmt.Errorf("%w: failed to generate start times: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableTimes: generated %d available times for employee=%d, service=%d, date=%s",
		len(starts), req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		EmployeeID:      req.EmployeeID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		AvailableTimes:  starts,
	}, nil
}

func emptyResponse(req *Request, durationMinutes int) *Response {
	return &Response{
		Date:            req.Date,
		EmployeeID:      req.EmployeeID,
		ServiceID:       req.ServiceID,
		DurationMinutes: durationMinutes,
		AvailableTimes:  []types.TimeString{},
	}
}
