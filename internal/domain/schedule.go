package domain

import (
	"time"

	"github.com/dkoval85/appointment-service/pkg/types"
)

// ScheduleConfig конфигурация рабочего дня и сетки слотов
// Иерархия: конфигурация конкретного сотрудника (employee_id задан)
// перекрывает общую конфигурацию организации (employee_id = NULL)
type ScheduleConfig struct {
	ID                      int64
	EmployeeID              *int64 // NULL = конфигурация для всех сотрудников
	WorkdayStart            types.TimeString
	WorkdayEnd              types.TimeString
	SlotGranularityMinutes  int // шаг сетки слотов публичной записи
	MinBookingNoticeMinutes int // минимальное время до начала слота при записи
	AdvanceBookingDays      int // 0 = без ограничения
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsGlobal returns true if this is the organisation-wide configuration
func (c *ScheduleConfig) IsGlobal() bool {
	return c.EmployeeID == nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *ScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// Workday возвращает рабочий день как интервал
func (c *ScheduleConfig) Workday() (TimeInterval, error) {
	return NewTimeInterval(c.WorkdayStart, c.WorkdayEnd)
}

// DefaultScheduleConfig возвращает конфигурацию по умолчанию
// Используется, когда в хранилище нет ни одной подходящей строки
func DefaultScheduleConfig() *ScheduleConfig {
	return &ScheduleConfig{
		WorkdayStart:            DefaultWorkdayStart,
		WorkdayEnd:              DefaultWorkdayEnd,
		SlotGranularityMinutes:  DefaultSlotGranularityMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}
