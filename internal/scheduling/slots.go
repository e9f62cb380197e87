package scheduling

import (
	"time"

	"github.com/dkoval85/appointment-service/pkg/types"
)

// GenerateStartTimes генерирует список времен начала, доступных для публичной записи.
//
// Берутся только полностью свободные блоки из CalculateDayBlocks. Для
// сегодняшней даты дополнительно отфильтровываются слоты, начинающиеся раньше
// now + minNoticeMinutes; для даты в прошлом возвращается пустой список.
// Пустой список - корректный ответ "нет слотов", не ошибка.
func GenerateStartTimes(p DayParams, now time.Time, minNoticeMinutes int) ([]types.TimeString, error) {
	if isDateInPast(p.Date, now) {
		return []types.TimeString{}, nil
	}

	blocks, err := CalculateDayBlocks(p)
	if err != nil {
		return nil, err
	}

	starts := make([]types.TimeString, 0, len(blocks))
	for _, block := range blocks {
		if block.IsAvailable {
			starts = append(starts, block.Interval.Start)
		}
	}

	// Для будущих дат фильтрация по текущему времени не нужна
	if !isSameDay(p.Date, now) {
		return starts, nil
	}

	currentTime := types.NewTimeString(now)
	minAllowed, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// Минимальное время ушло за конец суток - сегодня слотов больше нет
		return []types.TimeString{}, nil
	}

	filtered := make([]types.TimeString, 0, len(starts))
	for _, start := range starts {
		if !start.IsBefore(minAllowed) {
			filtered = append(filtered, start)
		}
	}

	return filtered, nil
}
