package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/pkg/types"
)

func TestGenerateStartTimes_FutureDate(t *testing.T) {
	now := testDate.AddDate(0, 0, -1)

	starts, err := GenerateStartTimes(DayParams{
		EmployeeID: 7,
		Date:       testDate,
		Appointments: []*domain.Appointment{
			makeAppointment(t, 1, 7, "10:00", "11:00", domain.StatusConfirmed),
		},
		Workday:            workday(t, "09:00", "12:00"),
		GranularityMinutes: 30,
		DurationMinutes:    60,
	}, now, 60)
	require.NoError(t, err)

	// Для будущей даты minNotice не применяется; заняты 09:30-11:30 окна
	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, starts)
}

func TestGenerateStartTimes_PastDateEmpty(t *testing.T) {
	now := testDate.AddDate(0, 0, 1)

	starts, err := GenerateStartTimes(DayParams{
		EmployeeID:         7,
		Date:               testDate,
		Workday:            workday(t, "09:00", "12:00"),
		GranularityMinutes: 30,
		DurationMinutes:    60,
	}, now, 0)
	require.NoError(t, err)
	assert.Empty(t, starts)
}

func TestGenerateStartTimes_SameDayMinNotice(t *testing.T) {
	// Сейчас 10:10 того же дня, minNotice 60 минут: слоты раньше 11:10 отпадают
	now := time.Date(2025, 10, 15, 10, 10, 0, 0, time.UTC)

	starts, err := GenerateStartTimes(DayParams{
		EmployeeID:         7,
		Date:               testDate,
		Workday:            workday(t, "09:00", "14:00"),
		GranularityMinutes: 60,
		DurationMinutes:    60,
	}, now, 60)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"12:00", "13:00"}, starts)
}

func TestGenerateStartTimes_MinNoticePastEndOfDay(t *testing.T) {
	now := time.Date(2025, 10, 15, 23, 30, 0, 0, time.UTC)

	// now + minNotice выходит за пределы суток: сегодня слотов больше нет
	starts, err := GenerateStartTimes(DayParams{
		EmployeeID:         7,
		Date:               testDate,
		Workday:            workday(t, "09:00", "18:00"),
		GranularityMinutes: 30,
		DurationMinutes:    30,
	}, now, 120)
	require.NoError(t, err)
	assert.Empty(t, starts)
}

func TestGenerateStartTimes_FullyBooked(t *testing.T) {
	now := testDate.AddDate(0, 0, -1)

	starts, err := GenerateStartTimes(DayParams{
		EmployeeID: 7,
		Date:       testDate,
		Appointments: []*domain.Appointment{
			makeAppointment(t, 1, 7, "09:00", "12:00", domain.StatusConfirmed),
		},
		Workday:            workday(t, "09:00", "12:00"),
		GranularityMinutes: 30,
		DurationMinutes:    60,
	}, now, 0)
	require.NoError(t, err)
	assert.Empty(t, starts)
}
