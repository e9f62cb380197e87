package booking_session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dkoval85/appointment-service/internal/api/handlers"
	"github.com/dkoval85/appointment-service/internal/booking"
	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия записи не найдена или истекла"
	msgInvalidStep        = "действие недоступно на текущем шаге"
	msgFlowCompleted      = "запись уже подтверждена"
	msgServiceNotFound    = "услуга не найдена"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgServiceNotProvided = "сотрудник не оказывает выбранную услугу"
	msgTimeNotAvailable   = "выбранное время недоступно"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgSlotConflict       = "слот занят, выберите другое время"
)

type Handler struct {
	flow   BookingFlow
	logger Logger
}

func NewHandler(flow BookingFlow, logger Logger) *Handler {
	return &Handler{
		flow:   flow,
		logger: logger,
	}
}

// HandleStart POST /api/v1/booking-sessions
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	session, err := h.flow.Start(r.Context())
	if err != nil {
		h.logger.Error("POST /booking-sessions - Failed to start session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /booking-sessions - Session started: session_id=%s", session.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromSession(session))
}

// HandleGet GET /api/v1/booking-sessions/{sessionId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.flow.Get(r.Context(), sessionID)
	if err != nil {
		h.respondFlowError(w, "GET /booking-sessions/{id}", sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSession(session))
}

// HandleSelectService POST /api/v1/booking-sessions/{sessionId}/service
func (h *Handler) HandleSelectService(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SelectServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/service - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.flow.SelectService(r.Context(), sessionID, req.ServiceID)
	if err != nil {
		h.respondFlowError(w, "POST /booking-sessions/{id}/service", sessionID, err)
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/service - Service selected: session_id=%s, service_id=%d",
		sessionID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusOK, FromSession(session))
}

// HandleSelectEmployee POST /api/v1/booking-sessions/{sessionId}/employee
func (h *Handler) HandleSelectEmployee(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SelectEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/employee - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.flow.SelectEmployee(r.Context(), sessionID, req.EmployeeID)
	if err != nil {
		h.respondFlowError(w, "POST /booking-sessions/{id}/employee", sessionID, err)
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/employee - Employee selected: session_id=%s, employee_id=%d",
		sessionID, req.EmployeeID)
	handlers.RespondJSON(w, http.StatusOK, FromSession(session))
}

// HandleSelectDateTime POST /api/v1/booking-sessions/{sessionId}/datetime
func (h *Handler) HandleSelectDateTime(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SelectDateTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/datetime - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/datetime - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/datetime - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	session, err := h.flow.SelectDateTime(r.Context(), sessionID, date, startTime)
	if err != nil {
		h.respondFlowError(w, "POST /booking-sessions/{id}/datetime", sessionID, err)
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/datetime - DateTime selected: session_id=%s, date=%s, time=%s",
		sessionID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromSession(session))
}

// HandleSetContact POST /api/v1/booking-sessions/{sessionId}/contact
func (h *Handler) HandleSetContact(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SetContactRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/contact - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.flow.SetContact(r.Context(), sessionID, req.ClientName, req.ClientEmail, req.ClientPhone, req.Notes)
	if err != nil {
		h.respondFlowError(w, "POST /booking-sessions/{id}/contact", sessionID, err)
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/contact - Contact set: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, FromSession(session))
}

// HandleConfirm POST /api/v1/booking-sessions/{sessionId}/confirm
// При конфликте слота возвращает 409, сессия откатывается на шаг выбора времени
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.flow.Confirm(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSchedulingConflict) {
			h.logger.Warn("POST /booking-sessions/{id}/confirm - Slot conflict: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)
			return
		}
		h.respondFlowError(w, "POST /booking-sessions/{id}/confirm", sessionID, err)
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/confirm - Appointment confirmed: session_id=%s, appointment_id=%d",
		sessionID, *session.AppointmentID)
	handlers.RespondJSON(w, http.StatusCreated, FromSession(session))
}

// respondFlowError маппит ошибки сценария на HTTP статусы
func (h *Handler) respondFlowError(w http.ResponseWriter, op, sessionID string, err error) {
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: session_id=%s", op, sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, booking.ErrInvalidStep):
		h.logger.Warn("%s - Invalid step: session_id=%s, error=%v", op, sessionID, err)
		handlers.RespondError(w, http.StatusConflict, msgInvalidStep)

	case errors.Is(err, booking.ErrFlowCompleted):
		h.logger.Warn("%s - Flow completed: session_id=%s", op, sessionID)
		handlers.RespondError(w, http.StatusConflict, msgFlowCompleted)

	case errors.Is(err, booking.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: session_id=%s", op, sessionID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, booking.ErrEmployeeNotFound):
		h.logger.Warn("%s - Employee not found: session_id=%s", op, sessionID)
		handlers.RespondNotFound(w, msgEmployeeNotFound)

	case errors.Is(err, booking.ErrServiceNotProvided):
		h.logger.Warn("%s - Service not provided: session_id=%s", op, sessionID)
		handlers.RespondBadRequest(w, msgServiceNotProvided)

	case errors.Is(err, booking.ErrTimeNotAvailable):
		h.logger.Warn("%s - Time not available: session_id=%s", op, sessionID)
		handlers.RespondError(w, http.StatusConflict, msgTimeNotAvailable)

	case errors.Is(err, booking.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: session_id=%s, error=%v", op, sessionID, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Unexpected error: session_id=%s, error=%v", op, sessionID, err)
		handlers.RespondInternalError(w)
	}
}
