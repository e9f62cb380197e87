package get_day_availability

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("get_day_availability: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден в каталоге
	ErrEmployeeNotFound = errors.New("get_day_availability: employee not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_availability: internal error")
)
