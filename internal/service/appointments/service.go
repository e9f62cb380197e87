package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkoval85/appointment-service/internal/domain"
	appointmentRepo "github.com/dkoval85/appointment-service/internal/infra/storage/appointment"
	"github.com/dkoval85/appointment-service/internal/scheduling"
	"github.com/dkoval85/appointment-service/internal/service/appointments/models"
	"github.com/dkoval85/appointment-service/pkg/ptr"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetEmployeeAppointments получает записи сотрудника с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных записей
//
// Примеры использования:
// - Все активные записи: GetEmployeeAppointments(ctx, &GetEmployeeAppointmentsRequest{EmployeeID: 123})
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Записи за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отмененные: IncludeInactive = true
func (s *Service) GetEmployeeAppointments(ctx context.Context, req *models.GetEmployeeAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetEmployeeAppointments: fetching appointments for employee=%d", req.EmployeeID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetEmployeeAppointments: invalid filter for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetEmployeeAppointments: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: GetEmployeeAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEmployeeAppointments: successfully fetched %d appointments for employee=%d",
		len(appointments), req.EmployeeID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetClientAppointments получает историю записей клиента
// История включает отмененные и завершенные записи
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, status=%v", req.ClientID, req.Status)

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClientAppointments: invalid status=%v for client=%d", req.Status, req.ClientID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%d",
		len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus обновляет статус записи
// Переход проверяется по таблице допустимых переходов внутри транзакции,
// чтобы два одновременных перехода не прошли по одному устаревшему состоянию
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", appointmentID, req.Status)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Получаем запись с блокировкой строки
		appt, err := s.appointmentRepo.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
				return ErrAppointmentNotFound
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		// Проверяем допустимость перехода
		if err := appt.ValidateTransition(newStatus); err != nil {
			s.logger.Warn("UpdateStatus: transition %s -> %s rejected for appointment id=%d: %v",
				appt.Status, newStatus, appointmentID, err)
			if errors.Is(err, domain.ErrImmutableAppointment) {
				return ErrImmutable
			}
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, newStatus)
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, appointmentID, newStatus); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			if errors.Is(err, appointmentRepo.ErrImmutableAppointment) {
				return ErrImmutable
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// Cancel отменяет запись с указанием причины
// Отмена идемпотентно запрещена для уже отмененных и завершенных записей
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d", appointmentID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if appt.IsCompleted() {
			s.logger.Warn("Cancel: appointment id=%d is completed and immutable", appointmentID)
			return ErrImmutable
		}

		if !appt.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
			return ErrCannotCancel
		}

		if err := s.appointmentRepo.Cancel(txCtx, appointmentID, req.CancellationReason); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			if errors.Is(err, appointmentRepo.ErrImmutableAppointment) {
				return ErrImmutable
			}
			s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}

// Reschedule переносит запись на другую дату/время
// Длительность сохраняется, новый интервал проходит ту же авторитетную
// проверку пересечений, что и создание записи
func (s *Service) Reschedule(ctx context.Context, appointmentID int64, req *models.RescheduleRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Reschedule: rescheduling appointment id=%d to date=%s, time=%s",
		appointmentID, req.Date.Format(domain.DateFormat), req.StartTime)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	startTime, err := models.ParseStartTime(req.StartTime)
	if err != nil {
		s.logger.Warn("Reschedule: invalid startTime=%s for appointment id=%d", req.StartTime, appointmentID)
		return nil, fmt.Errorf("%w: invalid startTime format", ErrInvalidInput)
	}

	var result *domain.Appointment

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Получаем запись с блокировкой строки
		appt, err := s.appointmentRepo.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Reschedule: appointment id=%d not found", appointmentID)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Reschedule: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}

		// Проверяем, что запись еще можно редактировать
		if err := appt.ValidateMutation(); err != nil {
			s.logger.Warn("Reschedule: appointment id=%d is not editable, status=%s", appointmentID, appt.Status)
			if errors.Is(err, domain.ErrImmutableAppointment) {
				return ErrImmutable
			}
			return fmt.Errorf("%w: cannot edit appointment in status %s", ErrInvalidTransition, appt.Status)
		}

		// Строим новый интервал с прежней длительностью
		interval, err := domain.IntervalFromStart(startTime, appt.Interval.DurationMinutes())
		if err != nil {
			s.logger.Warn("Reschedule: invalid interval for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// Получаем активные записи сотрудника на новую дату с блокировкой (FOR UPDATE)
		filter := domain.AppointmentsFilter{
			EmployeeID:      ptr.Ptr(appt.EmployeeID),
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		dayAppointments, err := s.appointmentRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			s.logger.Error("Reschedule: failed to get appointments: %v", err)
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}

		// Переносимая запись не конфликтует сама с собой
		others := make([]*domain.Appointment, 0, len(dayAppointments))
		for _, other := range dayAppointments {
			if other.ID != appointmentID {
				others = append(others, other)
			}
		}

		// Авторитетная проверка пересечений
		verdict := scheduling.CheckInterval(appt.EmployeeID, req.Date, interval, others)
		if !verdict.IsAvailable {
			s.logger.Warn("Reschedule: interval %s conflicts with appointment id=%d",
				interval, verdict.Conflicting.ID)
			return domain.NewConflictError(verdict.Conflicting)
		}

		// Обновляем запись
		updated := *appt
		updated.Date = req.Date
		updated.Interval = interval
		if req.Notes != nil {
			updated.Notes = req.Notes
		}

		if err := s.appointmentRepo.Reschedule(txCtx, appointmentID, &updated); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			if errors.Is(err, appointmentRepo.ErrImmutableAppointment) {
				return ErrImmutable
			}
			s.logger.Error("Reschedule: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}

		result = &updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Reschedule: successfully rescheduled appointment id=%d to %s %s",
		appointmentID, result.Date.Format(domain.DateFormat), result.Interval)
	return models.FromDomainAppointment(result), nil
}
