package update_appointment

import (
	"time"

	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/internal/service/appointments/models"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "10:00"
	Notes     *string `json:"notes,omitempty"`
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

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RescheduleAppointmentRequest) ToServiceRequest() (*models.RescheduleRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.RescheduleRequest{
		Date:      date,
		StartTime: r.StartTime,
		Notes:     r.Notes,
	}, nil
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
