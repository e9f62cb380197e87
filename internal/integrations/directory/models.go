package directory

// Service модель услуги из каталога DirectoryService
type Service struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	CategoryID      int64    `json:"category_id"`
	IsActive        bool     `json:"is_active"`
}

// Employee модель сотрудника из каталога DirectoryService
type Employee struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`

	// ServiceIDs услуги, которые сотрудник оказывает
	// Проверка "сотрудник умеет услугу" - это membership по этому списку,
	// движок расписания сам по себе её не навязывает
	ServiceIDs []int64 `json:"service_ids"`
}

// ProvidesService проверяет, что сотрудник оказывает услугу
func (e *Employee) ProvidesService(serviceID int64) bool {
	for _, id := range e.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от DirectoryService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
