package domain

import (
	"fmt"

	"github.com/dkoval85/appointment-service/pkg/types"
)

// TimeInterval полуоткрытый временной интервал [Start, End) в пределах одного дня
// Конструируется только через NewTimeInterval/IntervalFromStart, что гарантирует Start < End
type TimeInterval struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeInterval создает интервал [start, end)
// Возвращает ErrInvalidInterval, если время некорректно или start >= end
// Вырожденные интервалы (start == end) недопустимы
func NewTimeInterval(start, end types.TimeString) (TimeInterval, error) {
	if err := start.Validate(); err != nil {
		return TimeInterval{}, fmt.Errorf("%w: start: %v", ErrInvalidInterval, err)
	}
	if err := end.Validate(); err != nil {
		return TimeInterval{}, fmt.Errorf("%w: end: %v", ErrInvalidInterval, err)
	}
	if !start.IsBefore(end) {
		return TimeInterval{}, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidInterval, start, end)
	}
	return TimeInterval{Start: start, End: end}, nil
}

// IntervalFromStart создает интервал [start, start+durationMinutes)
func IntervalFromStart(start types.TimeString, durationMinutes int) (TimeInterval, error) {
	if durationMinutes <= 0 {
		return TimeInterval{}, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInterval, durationMinutes)
	}
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return TimeInterval{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	return NewTimeInterval(start, end)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов
// Интервалы пересекаются, только если a.Start < b.End И b.Start < a.End (строгие неравенства).
// Граничащие интервалы (a.End == b.Start) НЕ пересекаются - это позволяет
// записи "впритык" без зазора
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// Contains проверяет, что other целиком лежит внутри интервала
func (i TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.IsBefore(i.Start) && !i.End.IsBefore(other.End)
}

// DurationMinutes возвращает длительность интервала в минутах
func (i TimeInterval) DurationMinutes() int {
	return i.End.Minutes() - i.Start.Minutes()
}

// String возвращает представление вида "09:00-09:30"
func (i TimeInterval) String() string {
	return fmt.Sprintf("%s-%s", i.Start, i.End)
}
