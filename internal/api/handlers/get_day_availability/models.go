package get_day_availability

import (
	"github.com/dkoval85/appointment-service/internal/domain"
	getDayAvailability "github.com/dkoval85/appointment-service/internal/usecase/get_day_availability"
)

// BlockAppointment краткое описание записи, занимающей блок
type BlockAppointment struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// TimeBlockResponse один блок дня в календарном виде
type TimeBlockResponse struct {
	StartTime   string            `json:"startTime"`
	EndTime     string            `json:"endTime"`
	IsAvailable bool              `json:"isAvailable"`
	Appointment *BlockAppointment `json:"appointment,omitempty"`
}

// DayAvailabilityResponse HTTP response с полной картиной дня
type DayAvailabilityResponse struct {
	EmployeeID      int64               `json:"employeeId"`
	ServiceID       int64               `json:"serviceId"`
	Date            string              `json:"date"`
	DurationMinutes int                 `json:"durationMinutes"`
	Blocks          []TimeBlockResponse `json:"blocks"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayAvailability.Response) *DayAvailabilityResponse {
	blocks := make([]TimeBlockResponse, len(resp.Blocks))
	for i, b := range resp.Blocks {
		block := TimeBlockResponse{
			StartTime:   b.Interval.Start.String(),
			EndTime:     b.Interval.End.String(),
			IsAvailable: b.IsAvailable,
		}
		if b.Conflicting != nil {
			block.Appointment = &BlockAppointment{
				ID:        b.Conflicting.ID,
				StartTime: b.Conflicting.Interval.Start.String(),
				EndTime:   b.Conflicting.Interval.End.String(),
				Status:    string(b.Conflicting.Status),
			}
		}
		blocks[i] = block
	}

	return &DayAvailabilityResponse{
		EmployeeID:      resp.EmployeeID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Blocks:          blocks,
	}
}
