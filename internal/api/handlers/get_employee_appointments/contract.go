package get_employee_appointments

import (
	"context"

	"github.com/dkoval85/appointment-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetEmployeeAppointments(ctx context.Context, req *models.GetEmployeeAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
