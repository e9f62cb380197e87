package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/dkoval85/appointment-service/internal/api/handlers"
	"github.com/dkoval85/appointment-service/internal/service/schedule"
	"github.com/dkoval85/appointment-service/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/schedule-config
// EmployeeID = null в теле обновляет общую конфигурацию организации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /schedule-config - Invalid input: employee_id=%v, error=%v", req.EmployeeID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /schedule-config - Failed to upsert config: employee_id=%v, error=%v",
				req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule-config - Config upserted: config_id=%d, employee_id=%v", result.ID, req.EmployeeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
