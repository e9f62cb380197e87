package get_available_times

import (
	"time"

	"github.com/dkoval85/appointment-service/internal/domain"
	getAvailableTimes "github.com/dkoval85/appointment-service/internal/usecase/get_available_times"
)

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	Date            string   `json:"date"`
	EmployeeID      int64    `json:"employeeId"`
	ServiceID       int64    `json:"serviceId"`
	DurationMinutes int      `json:"durationMinutes"`
	AvailableTimes  []string `json:"availableTimes"`
}

// ToUseCaseRequest конвертирует HTTP параметры в модель use case
func ToUseCaseRequest(employeeID, serviceID int64, dateStr string) (*getAvailableTimes.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableTimes.Request{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	times := make([]string, len(resp.AvailableTimes))
	for i, t := range resp.AvailableTimes {
		times[i] = t.String()
	}

	return &AvailableTimesResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		EmployeeID:      resp.EmployeeID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		AvailableTimes:  times,
	}
}
