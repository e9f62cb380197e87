package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/pkg/types"
)

func workday(t *testing.T, start, end string) domain.TimeInterval {
	t.Helper()
	interval, err := domain.NewTimeInterval(types.TimeString(start), types.TimeString(end))
	require.NoError(t, err)
	return interval
}

func TestCalculateDayBlocks_EmptyDay(t *testing.T) {
	blocks, err := CalculateDayBlocks(DayParams{
		EmployeeID:         7,
		Date:               testDate,
		Workday:            workday(t, "09:00", "12:00"),
		GranularityMinutes: 30,
		DurationMinutes:    60,
	})
	require.NoError(t, err)

	// 09:00-12:00 с шагом 30 и окном 60: последнее окно 11:00-12:00
	require.Len(t, blocks, 5)
	assert.Equal(t, types.TimeString("09:00"), blocks[0].Interval.Start)
	assert.Equal(t, types.TimeString("11:00"), blocks[4].Interval.Start)
	assert.Equal(t, types.TimeString("12:00"), blocks[4].Interval.End)
	for _, block := range blocks {
		assert.True(t, block.IsAvailable)
		assert.Nil(t, block.Conflicting)
	}
}

func TestCalculateDayBlocks_FullDayCount(t *testing.T) {
	blocks, err := CalculateDayBlocks(DayParams{
		EmployeeID:         7,
		Date:               testDate,
		Workday:            workday(t, "08:00", "20:00"),
		GranularityMinutes: 30,
		DurationMinutes:    60,
	})
	require.NoError(t, err)

	// 08:00-20:00 с шагом 30 и окном 60: старты 08:00..19:00, всего 23 окна
	require.Len(t, blocks, 23)
	assert.Equal(t, types.TimeString("08:00"), blocks[0].Interval.Start)
	assert.Equal(t, types.TimeString("19:00"), blocks[22].Interval.Start)
	assert.Equal(t, types.TimeString("20:00"), blocks[22].Interval.End)
}

func TestCalculateDayBlocks_MarksOccupied(t *testing.T) {
	appointments := []*domain.Appointment{
		makeAppointment(t, 1, 7, "10:00", "11:00", domain.StatusConfirmed),
	}

	blocks, err := CalculateDayBlocks(DayParams{
		EmployeeID:         7,
		Date:               testDate,
		Appointments:       appointments,
		Workday:            workday(t, "09:00", "12:00"),
		GranularityMinutes: 30,
		DurationMinutes:    60,
	})
	require.NoError(t, err)
	require.Len(t, blocks, 5)

	// 09:00-10:00 свободен (граничит с записью)
	assert.True(t, blocks[0].IsAvailable)
	// 09:30-10:30, 10:00-11:00, 10:30-11:30 пересекаются с записью
	for _, i := range []int{1, 2, 3} {
		assert.False(t, blocks[i].IsAvailable, "block %s", blocks[i].Interval)
		require.NotNil(t, blocks[i].Conflicting)
		assert.Equal(t, int64(1), blocks[i].Conflicting.ID)
	}
	// 11:00-12:00 снова свободен
	assert.True(t, blocks[4].IsAvailable)
}

func TestCalculateDayBlocks_CancelledTransparent(t *testing.T) {
	appointments := []*domain.Appointment{
		makeAppointment(t, 1, 7, "10:00", "11:00", domain.StatusCancelled),
	}

	blocks, err := CalculateDayBlocks(DayParams{
		EmployeeID:         7,
		Date:               testDate,
		Appointments:       appointments,
		Workday:            workday(t, "09:00", "12:00"),
		GranularityMinutes: 30,
		DurationMinutes:    60,
	})
	require.NoError(t, err)

	for _, block := range blocks {
		assert.True(t, block.IsAvailable, "block %s", block.Interval)
	}
}

func TestCalculateDayBlocks_WindowLongerThanWorkday(t *testing.T) {
	blocks, err := CalculateDayBlocks(DayParams{
		EmployeeID:         7,
		Date:               testDate,
		Workday:            workday(t, "09:00", "10:00"),
		GranularityMinutes: 30,
		DurationMinutes:    120,
	})
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestCalculateDayBlocks_InvalidParams(t *testing.T) {
	_, err := CalculateDayBlocks(DayParams{
		Workday:            workday(t, "09:00", "18:00"),
		GranularityMinutes: 0,
		DurationMinutes:    60,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	_, err = CalculateDayBlocks(DayParams{
		Workday:            workday(t, "09:00", "18:00"),
		GranularityMinutes: 30,
		DurationMinutes:    0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestCalculateDayBlocks_Deterministic(t *testing.T) {
	params := DayParams{
		EmployeeID: 7,
		Date:       testDate,
		Appointments: []*domain.Appointment{
			makeAppointment(t, 1, 7, "11:00", "12:00", domain.StatusPending),
		},
		Workday:            workday(t, "09:00", "18:00"),
		GranularityMinutes: 15,
		DurationMinutes:    45,
	}

	first, err := CalculateDayBlocks(params)
	require.NoError(t, err)
	second, err := CalculateDayBlocks(params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
