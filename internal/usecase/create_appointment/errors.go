package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден в каталоге
	ErrEmployeeNotFound = errors.New("create_appointment: employee not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_appointment: client not found")

	// ErrServiceNotProvided возвращается, когда сотрудник не оказывает услугу
	ErrServiceNotProvided = errors.New("create_appointment: employee does not provide this service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrPastDateTime возвращается при попытке создать запись в прошлом
	ErrPastDateTime = errors.New("create_appointment: appointment date/time is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
