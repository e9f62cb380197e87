package check_availability

import (
	"time"

	"github.com/dkoval85/appointment-service/internal/domain"
	checkAvailability "github.com/dkoval85/appointment-service/internal/usecase/check_availability"
	"github.com/dkoval85/appointment-service/pkg/types"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	EmployeeID      int64  `json:"employeeId"`
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// OverlappingAppointment краткое описание записи, пересекающей интервал
type OverlappingAppointment struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// CheckAvailabilityResponse HTTP response с вердиктом доступности
type CheckAvailabilityResponse struct {
	IsAvailable       bool                     `json:"isAvailable"`
	StartTime         string                   `json:"startTime"`
	EndTime           string                   `json:"endTime"`
	Conflicting       *OverlappingAppointment  `json:"conflicting,omitempty"`
	CancelledOverlaps []OverlappingAppointment `json:"cancelledOverlaps,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		EmployeeID:      r.EmployeeID,
		Date:            date,
		Start:           start,
		DurationMinutes: r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	out := &CheckAvailabilityResponse{
		IsAvailable: resp.IsAvailable,
		StartTime:   resp.Interval.Start.String(),
		EndTime:     resp.Interval.End.String(),
	}

	if resp.Conflicting != nil {
		out.Conflicting = fromAppointment(resp.Conflicting)
	}

	for _, appt := range resp.CancelledOverlaps {
		out.CancelledOverlaps = append(out.CancelledOverlaps, *fromAppointment(appt))
	}

	return out
}

func fromAppointment(appt *domain.Appointment) *OverlappingAppointment {
	return &OverlappingAppointment{
		ID:        appt.ID,
		StartTime: appt.Interval.Start.String(),
		EndTime:   appt.Interval.End.String(),
		Status:    string(appt.Status),
	}
}
