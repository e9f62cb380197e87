package scheduling

import (
	"fmt"

	"github.com/dkoval85/appointment-service/internal/domain"
)

// CalculateDayBlocks разбивает рабочий день на блоки длительностью DurationMinutes
// с шагом GranularityMinutes и помечает каждый блок как свободный или занятый.
//
// Окна генерируются от начала рабочего дня; окно, выходящее за конец рабочего
// дня, не создается. Возвращаются ВСЕ блоки (и свободные, и занятые) в
// хронологическом порядке - вызывающая сторона сама решает, что показывать.
// Результат детерминирован для одинаковых входных данных.
func CalculateDayBlocks(p DayParams) ([]domain.TimeBlock, error) {
	if p.GranularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: granularity must be positive, got %d", domain.ErrInvalidInterval, p.GranularityMinutes)
	}
	if p.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrInvalidInterval, p.DurationMinutes)
	}

	active := FilterActive(p.Appointments, p.EmployeeID, p.Date)

	blocks := make([]domain.TimeBlock, 0)
	current := p.Workday.Start

	for current.IsBefore(p.Workday.End) {
		window, err := domain.IntervalFromStart(current, p.DurationMinutes)
		if err != nil {
			// Окно вышло за пределы суток - дальше окон не будет
			break
		}
		if window.End.IsAfter(p.Workday.End) {
			break
		}

		block := domain.TimeBlock{Interval: window, IsAvailable: true}
		for _, appt := range active {
			if window.Overlaps(appt.Interval) {
				block.IsAvailable = false
				block.Conflicting = appt
				break
			}
		}
		blocks = append(blocks, block)

		current, err = current.AddMinutes(p.GranularityMinutes)
		if err != nil {
			break
		}
	}

	return blocks, nil
}
