package create_appointment

import (
	"errors"
	"net/http"

	"github.com/dkoval85/appointment-service/internal/api/handlers"
	"github.com/dkoval85/appointment-service/internal/domain"
	createAppointment "github.com/dkoval85/appointment-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgClientNotFound     = "клиент не найден"
	msgServiceNotProvided = "сотрудник не оказывает выбранную услугу"
	msgPastDateTime       = "дата и время записи в прошлом"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Конфликт слота: в ответ включается запись, занявшая время
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			h.logger.Warn("POST /appointments - Slot conflict: employee_id=%d, date=%s, time=%s",
				req.EmployeeID, req.Date, req.StartTime)
			handlers.RespondConflict(w, ConflictResponse{
				Error:       msgSlotNotAvailable,
				Conflicting: FromConflicting(conflictErr.Conflicting),
			})
			return
		}

		switch {
		case errors.Is(err, createAppointment.ErrEmployeeNotFound):
			h.logger.Warn("POST /appointments - Employee not found: employee_id=%d", req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrClientNotFound):
			h.logger.Warn("POST /appointments - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotProvided):
			h.logger.Warn("POST /appointments - Service not provided: employee_id=%d, service_id=%d",
				req.EmployeeID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		case errors.Is(err, createAppointment.ErrPastDateTime):
			h.logger.Warn("POST /appointments - Past date/time: employee_id=%d, date=%s, time=%s",
				req.EmployeeID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgPastDateTime)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: employee_id=%d, client_id=%d, error=%v",
				req.EmployeeID, req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, employee_id=%d, client_id=%d",
		result.ID, req.EmployeeID, req.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
