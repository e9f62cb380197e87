package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkoval85/appointment-service/internal/domain"
	clientClient "github.com/dkoval85/appointment-service/internal/integrations/clientservice"
	directoryClient "github.com/dkoval85/appointment-service/internal/integrations/directory"
	"github.com/dkoval85/appointment-service/internal/scheduling"
	"github.com/dkoval85/appointment-service/pkg/ptr"
)

// UseCase use case создания записи сотрудником
// Запись создается сразу подтвержденной - сотрудник сам выбрал слот
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	directory       DirectoryClient
	clientService   ClientServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	directory DirectoryClient,
	clientService ClientServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		directory:       directory,
		clientService:   clientService,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: employee=%d, client=%d, service=%d, date=%s, time=%s",
		req.EmployeeID, req.ClientID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.directory.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем сотрудника и проверяем, что он оказывает услугу
	employee, err := uc.directory.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateAppointment: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	if !employee.ProvidesService(req.ServiceID) {
		uc.logger.Warn("CreateAppointment: employee id=%d does not provide service id=%d",
			req.EmployeeID, req.ServiceID)
		return nil, ErrServiceNotProvided
	}

	// 5. Получаем клиента для денормализации контактных данных
	client, err := uc.clientService.GetClient(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, clientClient.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 6. Строим интервал записи из времени начала и длительности услуги
	interval, err := domain.IntervalFromStart(req.StartTime, service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 7. Проверяем, что дата и время не в прошлом
	if err := validateNotInPast(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: past date/time: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем все активные записи сотрудника на дату с блокировкой (FOR UPDATE)
		filter := domain.AppointmentsFilter{
			EmployeeID:      ptr.Ptr(req.EmployeeID),
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 8.2. Авторитетная проверка пересечений
		verdict := scheduling.CheckInterval(req.EmployeeID, req.Date, interval, appointments)
		if !verdict.IsAvailable {
			uc.logger.Warn("CreateAppointment: interval %s conflicts with appointment id=%d",
				interval, verdict.Conflicting.ID)
			return domain.NewConflictError(verdict.Conflicting)
		}

		// 8.3. Создаем запись с денормализацией данных услуги и клиента
		appt := &domain.Appointment{
			EmployeeID: req.EmployeeID,
			ClientID:   ptr.Ptr(req.ClientID),
			ServiceID:  req.ServiceID,
			Date:       req.Date,
			Interval:   interval,
			Status:     domain.StatusConfirmed,
			// Денормализация данных услуги
			ServiceName:  service.Name,
			ServicePrice: getServicePrice(service),
			// Денормализация контактных данных клиента
			ClientName:  client.Name,
			ClientEmail: client.Email,
			ClientPhone: client.Phone,
			// Заметки
			Notes: req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		EmployeeID:      result.EmployeeID,
		ClientID:        result.ClientID,
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
		UpdatedAt:       result.UpdatedAt,
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
