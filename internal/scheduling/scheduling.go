// Package scheduling содержит чистые вычисления доступности: разбиение рабочего
// дня на блоки, проверку пересечений и генерацию слотов публичной записи.
// Пакет не хранит состояния и работает только со снапшотом записей, переданным вызывающей стороной.
package scheduling

import (
	"sort"
	"time"

	"github.com/dkoval85/appointment-service/internal/domain"
)

// DayParams входные параметры расчета доступности на один день
type DayParams struct {
	EmployeeID   int64
	Date         time.Time
	Appointments []*domain.Appointment // снапшот записей, может содержать чужие/неактивные - фильтруются внутри

	Workday            domain.TimeInterval // рабочий день [start, end)
	GranularityMinutes int                 // шаг сетки слотов
	DurationMinutes    int                 // длительность услуги
}

// FilterActive возвращает активные (pending/confirmed) записи сотрудника на дату,
// отсортированные по времени начала.
//
// Это единственное место, где отмененные и завершенные записи становятся
// прозрачными для расписания. Все проверки пересечений обязаны проходить
// через этот фильтр, иначе отмененный слот продолжит блокировать запись.
// Сортировка делает выбор "первого" конфликта детерминированным -
// пользователю всегда показывается самая ранняя конфликтующая запись.
func FilterActive(appointments []*domain.Appointment, employeeID int64, date time.Time) []*domain.Appointment {
	filtered := make([]*domain.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if appt.EmployeeID != employeeID {
			continue
		}
		if !isSameDay(appt.Date, date) {
			continue
		}
		if !appt.Status.IsActive() {
			continue
		}
		filtered = append(filtered, appt)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Interval.Start.IsBefore(filtered[j].Interval.Start)
	})

	return filtered
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
