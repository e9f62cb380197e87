package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval85/appointment-service/internal/domain"
	"github.com/dkoval85/appointment-service/pkg/types"
)

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func makeAppointment(t *testing.T, id, employeeID int64, start, end string, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()
	interval, err := domain.NewTimeInterval(types.TimeString(start), types.TimeString(end))
	require.NoError(t, err)
	return &domain.Appointment{
		ID:         id,
		EmployeeID: employeeID,
		Date:       testDate,
		Interval:   interval,
		Status:     status,
	}
}

func TestFilterActive(t *testing.T) {
	appointments := []*domain.Appointment{
		makeAppointment(t, 1, 7, "14:00", "15:00", domain.StatusConfirmed),
		makeAppointment(t, 2, 7, "10:00", "11:00", domain.StatusPending),
		// Отмененные и завершенные прозрачны
		makeAppointment(t, 3, 7, "09:00", "10:00", domain.StatusCancelled),
		makeAppointment(t, 4, 7, "12:00", "13:00", domain.StatusCompleted),
		// Чужая запись
		makeAppointment(t, 5, 8, "10:00", "11:00", domain.StatusConfirmed),
	}
	// Запись на другую дату
	other := makeAppointment(t, 6, 7, "10:00", "11:00", domain.StatusConfirmed)
	other.Date = testDate.AddDate(0, 0, 1)
	appointments = append(appointments, other)

	active := FilterActive(appointments, 7, testDate)

	require.Len(t, active, 2)
	// Сортировка по времени начала
	assert.Equal(t, int64(2), active[0].ID)
	assert.Equal(t, int64(1), active[1].ID)
}

func TestFilterActive_Empty(t *testing.T) {
	assert.Empty(t, FilterActive(nil, 7, testDate))
	assert.Empty(t, FilterActive([]*domain.Appointment{
		makeAppointment(t, 1, 7, "10:00", "11:00", domain.StatusCancelled),
	}, 7, testDate))
}

func TestCheckInterval(t *testing.T) {
	appointments := []*domain.Appointment{
		makeAppointment(t, 1, 7, "10:00", "11:00", domain.StatusConfirmed),
		makeAppointment(t, 2, 7, "14:00", "15:00", domain.StatusPending),
	}

	t.Run("free slot", func(t *testing.T) {
		proposed, err := domain.NewTimeInterval("12:00", "13:00")
		require.NoError(t, err)

		verdict := CheckInterval(7, testDate, proposed, appointments)
		assert.True(t, verdict.IsAvailable)
		assert.Nil(t, verdict.Conflicting)
	})

	t.Run("overlap with confirmed", func(t *testing.T) {
		proposed, err := domain.NewTimeInterval("10:30", "11:30")
		require.NoError(t, err)

		verdict := CheckInterval(7, testDate, proposed, appointments)
		assert.False(t, verdict.IsAvailable)
		require.NotNil(t, verdict.Conflicting)
		assert.Equal(t, int64(1), verdict.Conflicting.ID)
	})

	t.Run("touching boundary is free", func(t *testing.T) {
		proposed, err := domain.NewTimeInterval("11:00", "12:00")
		require.NoError(t, err)

		verdict := CheckInterval(7, testDate, proposed, appointments)
		assert.True(t, verdict.IsAvailable)
	})

	t.Run("first conflict by start time", func(t *testing.T) {
		proposed, err := domain.NewTimeInterval("10:00", "15:00")
		require.NoError(t, err)

		verdict := CheckInterval(7, testDate, proposed, appointments)
		assert.False(t, verdict.IsAvailable)
		assert.Equal(t, int64(1), verdict.Conflicting.ID)
	})
}

func TestCheckInterval_CancelledIsInformational(t *testing.T) {
	appointments := []*domain.Appointment{
		makeAppointment(t, 1, 7, "10:00", "11:00", domain.StatusCancelled),
	}

	proposed, err := domain.NewTimeInterval("10:00", "11:00")
	require.NoError(t, err)

	verdict := CheckInterval(7, testDate, proposed, appointments)

	// Отмененная запись не блокирует, но попадает в информационный список
	assert.True(t, verdict.IsAvailable)
	assert.Nil(t, verdict.Conflicting)
	require.Len(t, verdict.CancelledOverlaps, 1)
	assert.Equal(t, int64(1), verdict.CancelledOverlaps[0].ID)
}
