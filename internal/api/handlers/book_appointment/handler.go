package book_appointment

import (
	"errors"
	"net/http"

	"github.com/dkoval85/appointment-service/internal/api/handlers"
	"github.com/dkoval85/appointment-service/internal/domain"
	bookAppointment "github.com/dkoval85/appointment-service/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени, ожидается HH:MM"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgEmployeeNotFound    = "сотрудник не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceNotProvided  = "сотрудник не оказывает выбранную услугу"
	msgInvalidBookingDate  = "некорректная дата записи"
	msgDateTooFar          = "дата записи слишком далеко в будущем"
	msgTimeNotOnGrid       = "время не совпадает с сеткой слотов"
	msgOutsideWorkingHours = "время выходит за пределы рабочего дня"
	msgTooLateToBook       = "слишком поздно для записи на это время"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /book - Failed to parse request: %v", err)
		if req.Date != "" && len(req.Date) == len("2006-01-02") {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Конфликт слота: в ответ включается запись, занявшая время
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			h.logger.Warn("POST /book - Slot conflict: employee_id=%d, date=%s, time=%s",
				req.EmployeeID, req.Date, req.StartTime)
			handlers.RespondConflict(w, ConflictResponse{
				Error:       msgSlotNotAvailable,
				Conflicting: FromConflicting(conflictErr.Conflicting),
			})
			return
		}

		switch {
		case errors.Is(err, bookAppointment.ErrEmployeeNotFound):
			h.logger.Warn("POST /book - Employee not found: employee_id=%d", req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, bookAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /book - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookAppointment.ErrServiceNotProvided):
			h.logger.Warn("POST /book - Service not provided: employee_id=%d, service_id=%d",
				req.EmployeeID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		case errors.Is(err, bookAppointment.ErrInvalidDate):
			h.logger.Warn("POST /book - Invalid booking date: employee_id=%d, date=%s", req.EmployeeID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, bookAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /book - Date too far in future: employee_id=%d, date=%s", req.EmployeeID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, bookAppointment.ErrTimeNotOnGrid):
			h.logger.Warn("POST /book - Time not on grid: employee_id=%d, time=%s", req.EmployeeID, req.StartTime)
			handlers.RespondBadRequest(w, msgTimeNotOnGrid)

		case errors.Is(err, bookAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /book - Outside working hours: employee_id=%d, time=%s", req.EmployeeID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, bookAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /book - Too late to book: employee_id=%d, time=%s", req.EmployeeID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /book - Failed to book appointment: employee_id=%d, service_id=%d, error=%v",
				req.EmployeeID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /book - Appointment created successfully: appointment_id=%d, employee_id=%d, status=%s",
		result.ID, req.EmployeeID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
