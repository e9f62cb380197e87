package get_day_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkoval85/appointment-service/internal/domain"
	scheduleRepo "github.com/dkoval85/appointment-service/internal/infra/storage/schedule"
	directoryClient "github.com/dkoval85/appointment-service/internal/integrations/directory"
	"github.com/dkoval85/appointment-service/internal/scheduling"
	"github.com/dkoval85/appointment-service/pkg/ptr"
)

// UseCase use case расчета доступности дня для внутреннего календаря
// В отличие от публичного генератора слотов возвращает и занятые блоки
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	directory       DirectoryClient
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
		logger:          logger,
	}
}

// Execute выполняет use case расчета доступности дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayAvailability: employee=%d, service=%d, date=%s",
		req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayAvailability: validation failed: %v", err)
		return nil, err
	}

	// Внутренний календарь - не найденные услуга/сотрудник это ошибки, не "нет слотов"
	service, err := uc.directory.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("GetDayAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetDayAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if _, err := uc.directory.GetEmployee(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, directoryClient.ErrEmployeeNotFound) {
			uc.logger.Warn("GetDayAvailability: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetDayAvailability: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	config, err := uc.scheduleRepo.GetConfigWithHierarchy(ctx, ptr.Ptr(req.EmployeeID))
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("GetDayAvailability: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultScheduleConfig()
	}

	filter := domain.AppointmentsFilter{
		EmployeeID:      ptr.Ptr(req.EmployeeID),
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDayAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	workday, err := config.Workday()
	if err != nil {
		uc.logger.Error("GetDayAvailability: invalid workday in config id=%d: %v", config.ID, err)
		return nil, fmt.Errorf("%w: invalid workday config: %v", ErrInternal, err)
	}

	blocks, err := scheduling.CalculateDayBlocks(scheduling.DayParams{
		EmployeeID:         req.EmployeeID,
		Date:               req.Date,
		Appointments:       appointments,
		Workday:            workday,
		GranularityMinutes: config.SlotGranularityMinutes,
		DurationMinutes:    service.DurationMinutes,
	})
	if err != nil {
		uc.logger.Error("GetDayAvailability: failed to calculate blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate blocks: %v", ErrInternal, err)
	}

	uc.logger.Info("GetDayAvailability: calculated %d blocks for employee=%d, date=%s",
		len(blocks), req.EmployeeID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		EmployeeID:      req.EmployeeID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Blocks:          blocks,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
