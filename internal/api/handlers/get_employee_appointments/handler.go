package get_employee_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dkoval85/appointment-service/internal/api/handlers"
	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/internal/service/appointments"
	"github.com/dkoval85/appointment-service/internal/service/appointments/models"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidStartDate  = "некорректный формат startDate, ожидается YYYY-MM-DD"
	msgInvalidEndDate    = "некорректный формат endDate, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/appointments
// Query параметры: startDate, endDate, status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil || employeeID <= 0 {
		h.logger.Warn("GET /employees/{id}/appointments - Invalid employee ID: %s", vars["employeeId"])
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	req := &models.GetEmployeeAppointmentsRequest{
		EmployeeID: employeeID,
	}

	query := r.URL.Query()

	if v := query.Get("startDate"); v != "" {
		startDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /employees/{id}/appointments - Invalid startDate: %s", v)
			handlers.RespondBadRequest(w, msgInvalidStartDate)
			return
		}
		req.StartDate = &startDate
	}

	if v := query.Get("endDate"); v != "" {
		endDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /employees/{id}/appointments - Invalid endDate: %s", v)
			handlers.RespondBadRequest(w, msgInvalidEndDate)
			return
		}
		req.EndDate = &endDate
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("includeInactive"); v != "" {
		req.IncludeInactive = v == "true" || v == "1"
	}

	result, err := h.service.GetEmployeeAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/appointments - Invalid input: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /employees/{id}/appointments - Failed to get appointments: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
