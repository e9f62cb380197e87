package get_available_times

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkoval85/appointment-service/internal/api/handlers"
	getAvailableTimes "github.com/dkoval85/appointment-service/internal/usecase/get_available_times"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingServiceID  = "ID услуги обязателен"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEmployeeNotFound  = "сотрудник не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgDateTooFar        = "дата записи слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/available-times
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем employeeId из URL
	employeeIDStr := vars["employeeId"]
	employeeID, err := strconv.ParseInt(employeeIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/available-times - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /employees/{id}/available-times - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/available-times - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /employees/{id}/available-times - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(employeeID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/available-times - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id}/available-times - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableTimes.ErrServiceNotFound):
			h.logger.Warn("GET /employees/{id}/available-times - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableTimes.ErrDateTooFarInFuture):
			h.logger.Warn("GET /employees/{id}/available-times - Date too far in future: employee_id=%d, date=%s",
				employeeID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableTimes.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/available-times - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /employees/{id}/available-times - Failed to get times: employee_id=%d, service_id=%d, error=%v",
				employeeID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /employees/{id}/available-times - Times retrieved successfully: employee_id=%d, service_id=%d, times_count=%d",
		employeeID, serviceID, len(result.AvailableTimes))
	handlers.RespondJSON(w, http.StatusOK, response)
}
