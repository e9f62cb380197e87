package booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("booking: session not found")

	// ErrInvalidStep возвращается при попытке выполнить шаг вне очереди
	ErrInvalidStep = errors.New("booking: action is not valid at this step")

	// ErrFlowCompleted возвращается при попытке изменить завершенный сценарий
	ErrFlowCompleted = errors.New("booking: flow is already completed")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("booking: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден или неактивен
	ErrEmployeeNotFound = errors.New("booking: employee not found")

	// ErrServiceNotProvided возвращается, когда сотрудник не оказывает услугу
	ErrServiceNotProvided = errors.New("booking: employee does not provide this service")

	// ErrTimeNotAvailable возвращается, когда выбранное время недоступно
	ErrTimeNotAvailable = errors.New("booking: selected time is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сценария
	ErrInternal = errors.New("booking: internal error")
)
