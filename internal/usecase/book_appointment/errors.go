package book_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("book_appointment: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден или неактивен
	ErrEmployeeNotFound = errors.New("book_appointment: employee not found")

	// ErrServiceNotProvided возвращается, когда сотрудник не оказывает услугу
	ErrServiceNotProvided = errors.New("book_appointment: employee does not provide this service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInvalidDate возвращается при попытке записи на прошедшую дату
	ErrInvalidDate = errors.New("book_appointment: date is in the past")

	// ErrDateTooFarInFuture возвращается при превышении advanceBookingDays
	ErrDateTooFarInFuture = errors.New("book_appointment: date exceeds advance booking limit")

	// ErrTooLateToBook возвращается при нарушении minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("book_appointment: too late to book this time")

	// ErrTimeNotOnGrid возвращается, когда время не совпадает с сеткой слотов
	ErrTimeNotOnGrid = errors.New("book_appointment: time does not match the slot grid")

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочий день
	ErrOutsideWorkingHours = errors.New("book_appointment: time is outside working hours")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
