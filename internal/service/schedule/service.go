package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkoval85/appointment-service/internal/domain"
	scheduleRepo "github.com/dkoval85/appointment-service/internal/infra/storage/schedule"
	"github.com/dkoval85/appointment-service/internal/service/schedule/models"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфигурации расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetEffective получает действующую конфигурацию с учетом иерархии приоритетов
// Приоритет: конфигурация сотрудника > общая конфигурация > дефолтные значения
// Метод всегда возвращает конфигурацию - отсутствие строк в хранилище не ошибка
func (s *Service) GetEffective(ctx context.Context, employeeID *int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetEffective: fetching config for employee=%v", employeeID)

	config, err := s.scheduleRepo.GetConfigWithHierarchy(ctx, employeeID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Info("GetEffective: no config found, using defaults")
			return models.FromDomainConfig(domain.DefaultScheduleConfig()), nil
		}
		s.logger.Error("GetEffective: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEffective: successfully fetched config id=%d (level: %s)", config.ID, s.configLevel(config))
	return models.FromDomainConfig(config), nil
}

// GetAll получает все конфигурации (общую и персональные)
func (s *Service) GetAll(ctx context.Context) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAll: fetching all schedule configs")

	configs, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAll: successfully fetched %d configs", len(configs))
	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или обновляет конфигурацию расписания
// EmployeeID = nil обновляет общую конфигурацию организации
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: upserting config for employee=%v", req.EmployeeID)

	config := req.ToDomainConfig()

	// Валидируем параметры конфигурации
	if err := s.validateConfig(config); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.scheduleRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully upserted config id=%d", updated.ID)
	return models.FromDomainConfig(updated), nil
}

// Вспомогательные методы

// validateConfig валидирует параметры конфигурации расписания
func (s *Service) validateConfig(config *domain.ScheduleConfig) error {
	if config.EmployeeID != nil && *config.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeId must be positive", ErrInvalidInput)
	}

	// Рабочий день должен быть корректным интервалом
	if _, err := config.Workday(); err != nil {
		return fmt.Errorf("%w: invalid workday: %v", ErrInvalidInput, err)
	}

	if config.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		config.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if config.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes ||
		config.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	if config.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		config.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}

// configLevel возвращает строковое представление уровня конфигурации для логирования
func (s *Service) configLevel(config *domain.ScheduleConfig) string {
	if config.IsGlobal() {
		return "global"
	}
	return "employee"
}
