package scheduling

import (
	"sort"
	"time"

	"github.com/dkoval85/appointment-service/internal/domain"
)

// CheckInterval проверяет один предложенный интервал на пересечение с записями сотрудника.
//
// Блокируют только активные (pending/confirmed) записи; первая по времени
// начала пересекающаяся запись возвращается как Conflicting. Дополнительно
// возвращается информационный список отмененных записей, пересекающих интервал:
// планировщику полезно видеть, что слот недавно освободился. Этот список
// не влияет на вердикт.
//
// Проверка чисто вычислительная и может быть неактуальна к моменту записи -
// авторитетная проверка выполняется хранилищем в сериализуемой транзакции.
func CheckInterval(employeeID int64, date time.Time, proposed domain.TimeInterval, appointments []*domain.Appointment) domain.AvailabilityVerdict {
	verdict := domain.AvailabilityVerdict{IsAvailable: true}

	for _, appt := range FilterActive(appointments, employeeID, date) {
		if proposed.Overlaps(appt.Interval) {
			verdict.IsAvailable = false
			verdict.Conflicting = appt
			break
		}
	}

	// Отмененные записи, пересекающие интервал - информационный сигнал
	cancelled := make([]*domain.Appointment, 0)
	for _, appt := range appointments {
		if appt.EmployeeID != employeeID || !isSameDay(appt.Date, date) {
			continue
		}
		if appt.Status != domain.StatusCancelled {
			continue
		}
		if proposed.Overlaps(appt.Interval) {
			cancelled = append(cancelled, appt)
		}
	}
	sort.Slice(cancelled, func(i, j int) bool {
		return cancelled[i].Interval.Start.IsBefore(cancelled[j].Interval.Start)
	})
	verdict.CancelledOverlaps = cancelled

	return verdict
}
