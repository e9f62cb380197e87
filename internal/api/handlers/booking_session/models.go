package booking_session

import (
	"time"

	"github.com/dkoval85/appointment-service/internal/booking"
	"github.com/dkoval85/appointment-service/internal/domain"
)

// Request модели шагов сценария

// SelectServiceRequest запрос выбора услуги
type SelectServiceRequest struct {
	ServiceID int64 `json:"serviceId"`
}

// SelectEmployeeRequest запрос выбора сотрудника
type SelectEmployeeRequest struct {
	EmployeeID int64 `json:"employeeId"`
}

// SelectDateTimeRequest запрос выбора даты и времени
type SelectDateTimeRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
}

// SetContactRequest запрос ввода контактных данных
type SetContactRequest struct {
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone string  `json:"clientPhone,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// SessionResponse HTTP представление сессии записи
type SessionResponse struct {
	ID            string  `json:"id"`
	Step          string  `json:"step"`
	ServiceID     int64   `json:"serviceId,omitempty"`
	EmployeeID    int64   `json:"employeeId,omitempty"`
	Date          string  `json:"date,omitempty"`
	StartTime     string  `json:"startTime,omitempty"`
	ClientName    string  `json:"clientName,omitempty"`
	ClientEmail   string  `json:"clientEmail,omitempty"`
	ClientPhone   string  `json:"clientPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	AppointmentID *int64  `json:"appointmentId,omitempty"`
	ExpiresAt     string  `json:"expiresAt"`
}

// FromSession конвертирует сессию в HTTP response
func FromSession(s *booking.Session) *SessionResponse {
	resp := &SessionResponse{
		ID:            s.ID,
		Step:          string(s.Step),
		ServiceID:     s.ServiceID,
		EmployeeID:    s.EmployeeID,
		ClientName:    s.ClientName,
		ClientEmail:   s.ClientEmail,
		ClientPhone:   s.ClientPhone,
		Notes:         s.Notes,
		AppointmentID: s.AppointmentID,
		ExpiresAt:     s.ExpiresAt.Format(time.RFC3339),
	}

	if !s.Date.IsZero() {
		resp.Date = s.Date.Format(domain.DateFormat)
	}
	if !s.StartTime.IsZero() {
		resp.StartTime = s.StartTime.String()
	}

	return resp
}
