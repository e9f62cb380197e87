package get_schedule_config

import (
	"net/http"
	"strconv"

	"github.com/dkoval85/appointment-service/internal/api/handlers"
)

const (
	msgInvalidEmployeeID = "некорректный параметр employeeId"
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

// Handle GET /api/v1/schedule-config
// Без параметров возвращает действующую общую конфигурацию,
// с ?employeeId= действующую конфигурацию сотрудника (с учетом иерархии),
// с ?all=true все сохраненные конфигурации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("all") == "true" {
		result, err := h.service.GetAll(r.Context())
		if err != nil {
			h.logger.Error("GET /schedule-config - Failed to get all configs: %v", err)
			handlers.RespondInternalError(w)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, result)
		return
	}

	var employeeID *int64
	if v := query.Get("employeeId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /schedule-config - Invalid employee ID: %s", v)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		employeeID = &id
	}

	result, err := h.service.GetEffective(r.Context(), employeeID)
	if err != nil {
		h.logger.Error("GET /schedule-config - Failed to get config: employee_id=%v, error=%v", employeeID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
