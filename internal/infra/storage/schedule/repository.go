package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/pkg/dbmetrics"
	"github.com/dkoval85/appointment-service/pkg/psqlbuilder"
)

var configColumns = []string{
	"id",
	"employee_id",
	"workday_start",
	"workday_end",
	"slot_granularity_minutes",
	"min_booking_notice_minutes",
	"advance_booking_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов:
// 1. Конфигурация конкретного сотрудника (employee_id = employeeID)
// 2. Общая конфигурация организации (employee_id IS NULL)
// Если не найдено ни одной строки, возвращает ErrConfigNotFound -
// вызывающая сторона подставляет дефолты
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, employeeID *int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("employee_schedule_config")

	if employeeID != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Or{
				squirrel.Eq{"employee_id": *employeeID},
				squirrel.Eq{"employee_id": nil},
			}).
			// Сначала конфигурация сотрудника, затем общая
			OrderBy("employee_id ASC NULLS LAST")
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": nil})
	}

	query, args, err := selectBuilder.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetAll возвращает все конфигурации (общую и персональные)
func (r *Repository) GetAll(ctx context.Context) ([]*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("employee_schedule_config").
		OrderBy("employee_id ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.ScheduleConfig, 0)
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan config: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию для сотрудника (или общую при employeeID = nil)
func (r *Repository) Upsert(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("employee_schedule_config").
		Columns(
			"employee_id",
			"workday_start",
			"workday_end",
			"slot_granularity_minutes",
			"min_booking_notice_minutes",
			"advance_booking_days",
		).
		Values(
			config.EmployeeID,
			config.WorkdayStart,
			config.WorkdayEnd,
			config.SlotGranularityMinutes,
			config.MinBookingNoticeMinutes,
			config.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (COALESCE(employee_id, 0)) DO UPDATE SET
			workday_start = EXCLUDED.workday_start,
			workday_end = EXCLUDED.workday_end,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.ScheduleConfig, error) {
	var config domain.ScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.EmployeeID,
		&config.WorkdayStart,
		&config.WorkdayEnd,
		&config.SlotGranularityMinutes,
		&config.MinBookingNoticeMinutes,
		&config.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
