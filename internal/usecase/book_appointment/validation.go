package book_appointment

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/pkg/types"
)

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

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// Контактные данные обязательны - публичная запись не привязана к учетной записи
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.ClientEmail)
	if email == "" {
		return fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxClientEmailLength {
		return fmt.Errorf("%w: clientEmail is too long", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid clientEmail format", ErrInvalidInput)
	}

	phone := strings.TrimSpace(req.ClientPhone)
	if phone == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxClientPhoneLength {
		return fmt.Errorf("%w: clientPhone is too long", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes is too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Проверяем, что дата не в прошлом
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := nowOnly.AddDate(0, 0, advanceBookingDays)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет время публичной записи и строит интервал.
// Время обязано лежать на сетке слотов от начала рабочего дня, интервал -
// целиком укладываться в рабочий день, а для записи на сегодня - соблюдать
// minBookingNoticeMinutes
func validateBookingTime(
	req *Request,
	durationMinutes int,
	config *domain.ScheduleConfig,
	now time.Time,
) (domain.TimeInterval, error) {
	var zero domain.TimeInterval

	workday, err := config.Workday()
	if err != nil {
		return zero, fmt.Errorf("%w: invalid workday config: %v", ErrInternal, err)
	}

	interval, err := domain.IntervalFromStart(req.StartTime, durationMinutes)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Время начала должно совпадать с сеткой слотов
	offset := req.StartTime.Minutes() - workday.Start.Minutes()
	if offset < 0 || offset%config.SlotGranularityMinutes != 0 {
		return zero, fmt.Errorf("%w: time %s is not on the %d-minute grid from %s",
			ErrTimeNotOnGrid, req.StartTime, config.SlotGranularityMinutes, workday.Start)
	}

	// Интервал должен целиком укладываться в рабочий день
	if !workday.Contains(interval) {
		return zero, fmt.Errorf("%w: interval %s is outside working hours %s",
			ErrOutsideWorkingHours, interval, workday)
	}

	// Для записи на сегодня проверяем minBookingNoticeMinutes
	if isSameDay(req.Date, now) {
		currentTime := types.NewTimeString(now)
		minAllowedTime, err := currentTime.AddMinutes(config.MinBookingNoticeMinutes)
		if err != nil {
			// Минимальное время ушло за конец суток - сегодня записаться уже нельзя
			return zero, fmt.Errorf("%w: must book at least %d minutes in advance",
				ErrTooLateToBook, config.MinBookingNoticeMinutes)
		}

		if req.StartTime.IsBefore(minAllowedTime) {
			return zero, fmt.Errorf("%w: must book at least %d minutes in advance",
				ErrTooLateToBook, config.MinBookingNoticeMinutes)
		}
	}

	return interval, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
