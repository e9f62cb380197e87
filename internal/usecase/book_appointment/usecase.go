package book_appointment

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

// UseCase use case публичной записи клиента
// Публичная запись строже внутренней: время обязано лежать на сетке слотов,
// укладываться в рабочий день и соблюдать minBookingNoticeMinutes
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	directory       DirectoryClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	publicStatus    domain.AppointmentStatus
}

// NewUseCase создает новый экземпляр use case
// publicStatus - статус создаваемых публичных записей (pending или confirmed)
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	directory DirectoryClient,
	txManager TransactionManager,
	publicStatus domain.AppointmentStatus,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		directory:       directory,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		publicStatus:    publicStatus,
	}
}

// Execute выполняет use case публичной записи
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: employee=%d, service=%d, date=%s, time=%s, client=%s",
		req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.ClientName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу; неактивная услуга публично недоступна
	service, err := uc.directory.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("BookAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("BookAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("BookAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Получаем сотрудника; неактивный сотрудник публично недоступен
	employee, err := uc.directory.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrEmployeeNotFound) {
			uc.logger.Warn("BookAppointment: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("BookAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if !employee.IsActive {
		uc.logger.Warn("BookAppointment: employee id=%d is inactive", req.EmployeeID)
		return nil, ErrEmployeeNotFound
	}
	if !employee.ProvidesService(req.ServiceID) {
		uc.logger.Warn("BookAppointment: employee id=%d does not provide service id=%d",
			req.EmployeeID, req.ServiceID)
		return nil, ErrServiceNotProvided
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем конфигурацию расписания с учетом иерархии
		config, err := uc.scheduleRepo.GetConfigWithHierarchy(txCtx, ptr.Ptr(req.EmployeeID))
		if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Error("BookAppointment: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}
		if config == nil {
			config = domain.DefaultScheduleConfig()
			uc.logger.Info("BookAppointment: using default schedule config for employee=%d", req.EmployeeID)
		} else {
			uc.logger.Info("BookAppointment: using schedule config id=%d", config.ID)
		}

		// 5.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("BookAppointment: date validation failed: %v", err)
			return err
		}

		// 5.3. Валидация времени: сетка слотов, рабочий день, minBookingNoticeMinutes
		interval, err := validateBookingTime(req, service.DurationMinutes, config, now)
		if err != nil {
			uc.logger.Warn("BookAppointment: time validation failed: %v", err)
			return err
		}

		// 5.4. Получаем все активные записи сотрудника на дату с блокировкой (FOR UPDATE)
		filter := domain.AppointmentsFilter{
			EmployeeID:      ptr.Ptr(req.EmployeeID),
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.5. Авторитетная проверка пересечений
		verdict := scheduling.CheckInterval(req.EmployeeID, req.Date, interval, appointments)
		if !verdict.IsAvailable {
			uc.logger.Warn("BookAppointment: interval %s conflicts with appointment id=%d",
				interval, verdict.Conflicting.ID)
			return domain.NewConflictError(verdict.Conflicting)
		}

		// 5.6. Создаем запись с денормализацией данных услуги
		appt := &domain.Appointment{
			EmployeeID: req.EmployeeID,
			ClientID:   nil, // публичная запись без учетной записи клиента
			ServiceID:  req.ServiceID,
			Date:       req.Date,
			Interval:   interval,
			Status:     uc.publicStatus,
			// Денормализация данных услуги
			ServiceName:  service.Name,
			ServicePrice: getServicePrice(service),
			// Контактные данные из формы записи
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
			ClientPhone: req.ClientPhone,
			// Заметки
			Notes: req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%d, status=%s",
		result.ID, result.Status)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		EmployeeID:      result.EmployeeID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.Interval.Start,
		EndTime:         result.Interval.End,
		DurationMinutes: result.Interval.DurationMinutes(),
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		ClientName:      result.ClientName,
		ClientEmail:     result.ClientEmail,
		ClientPhone:     result.ClientPhone,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
	}, nil
}

// getServicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0.0
func getServicePrice(service *directoryClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
