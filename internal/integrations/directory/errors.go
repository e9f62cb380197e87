package directory

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("directory client: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден в каталоге
	ErrEmployeeNotFound = errors.New("directory client: employee not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("directory client: invalid response")
)
