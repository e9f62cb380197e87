package domain

import "github.com/dkoval85/appointment-service/pkg/types"

// Default schedule configuration values
const (
	DefaultWorkdayStart           types.TimeString = "09:00"
	DefaultWorkdayEnd             types.TimeString = "18:00"
	DefaultSlotGranularityMinutes                  = 30
	DefaultMinBookingNoticeMinutes                 = 0
	DefaultAdvanceBookingDays                      = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinSlotGranularityMinutes   = 5
	MaxSlotGranularityMinutes   = 240
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxClientNameLength         = 200
	MaxClientEmailLength        = 200
	MaxClientPhoneLength        = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы записей, занимающих время в расписании
// Используется для фильтрации при всех проверках пересечений
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы записей, прозрачных для расписания
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
}
