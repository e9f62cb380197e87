package create_appointment

import (
	"time"

	"github.com/dkoval85/appointment-service/internal/domain"
	createAppointment "github.com/dkoval85/appointment-service/internal/usecase/create_appointment"
	"github.com/dkoval85/appointment-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	EmployeeID int64   `json:"employeeId"`
	ClientID   int64   `json:"clientId"`
	ServiceID  int64   `json:"serviceId"`
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "10:00"
	Notes      *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	EmployeeID      int64   `json:"employeeId"`
	ClientID        *int64  `json:"clientId,omitempty"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     string  `json:"clientPhone,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ConflictingAppointment краткое описание записи, занявшей слот
type ConflictingAppointment struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// ConflictResponse тело ответа 409 Conflict
type ConflictResponse struct {
	Error       string                  `json:"error"`
	Conflicting *ConflictingAppointment `json:"conflicting,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		EmployeeID: r.EmployeeID,
		ClientID:   r.ClientID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		EmployeeID:      resp.EmployeeID,
		ClientID:        resp.ClientID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		ClientName:      resp.ClientName,
		ClientEmail:     resp.ClientEmail,
		ClientPhone:     resp.ClientPhone,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromConflicting конвертирует конфликтующую запись в DTO
func FromConflicting(appt *domain.Appointment) *ConflictingAppointment {
	if appt == nil {
		return nil
	}

	return &ConflictingAppointment{
		ID:        appt.ID,
		Date:      appt.Date.Format(domain.DateFormat),
		StartTime: appt.Interval.Start.String(),
		EndTime:   appt.Interval.End.String(),
		Status:    string(appt.Status),
	}
}
