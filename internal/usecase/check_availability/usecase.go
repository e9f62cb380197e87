package check_availability

import (
	"context"
	"fmt"

	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/internal/scheduling"
	"github.com/dkoval85/appointment-service/pkg/ptr"
)

// UseCase use case консультативной проверки доступности интервала
type UseCase struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: employee=%d, date=%s, start=%s, duration=%d",
		req.EmployeeID, req.Date.Format(domain.DateFormat), req.Start, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	proposed, err := domain.IntervalFromStart(req.Start, req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CheckAvailability: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем записи сотрудника на дату, включая неактивные -
	// отмененные нужны для информационного списка CancelledOverlaps
	filter := domain.AppointmentsFilter{
		EmployeeID:      ptr.Ptr(req.EmployeeID),
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: true,
	}

	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 3. Проверяем пересечения
	verdict := scheduling.CheckInterval(req.EmployeeID, req.Date, proposed, appointments)

	if verdict.IsAvailable {
		uc.logger.Info("CheckAvailability: interval %s is available for employee=%d", proposed, req.EmployeeID)
	} else {
		uc.logger.Info("CheckAvailability: interval %s conflicts with appointment id=%d",
			proposed, verdict.Conflicting.ID)
	}

	return &Response{
		IsAvailable:       verdict.IsAvailable,
		Interval:          proposed,
		Conflicting:       verdict.Conflicting,
		CancelledOverlaps: verdict.CancelledOverlaps,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.Start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	return nil
}
