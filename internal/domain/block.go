package domain

// TimeBlock derived availability block produced by the availability calculator
// Не персистится - вычисляется на каждый запрос заново
type TimeBlock struct {
	Interval    TimeInterval
	IsAvailable bool
	Conflicting *Appointment // первая по времени начала конфликтующая запись, если блок занят
}

// AvailabilityVerdict результат проверки конкретного предложенного интервала
type AvailabilityVerdict struct {
	IsAvailable bool
	Conflicting *Appointment

	// CancelledOverlaps отмененные записи, пересекающие интервал
	// Информационный сигнал для планировщика (слот недавно освободился), не блокирует
	CancelledOverlaps []*Appointment
}
