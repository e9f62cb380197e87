package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval85/appointment-service/pkg/types"
)

func mustInterval(t *testing.T, start, end string) TimeInterval {
	t.Helper()
	interval, err := NewTimeInterval(types.TimeString(start), types.TimeString(end))
	require.NoError(t, err)
	return interval
}

func TestNewTimeInterval(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "valid", start: "09:00", end: "10:00"},
		{name: "full day", start: "00:00", end: "24:00"},
		{name: "degenerate", start: "09:00", end: "09:00", wantErr: true},
		{name: "inverted", start: "10:00", end: "09:00", wantErr: true},
		{name: "invalid start", start: "9:00", end: "10:00", wantErr: true},
		{name: "invalid end", start: "09:00", end: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeInterval(types.TimeString(tt.start), types.TimeString(tt.end))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInterval)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIntervalFromStart(t *testing.T) {
	interval, err := IntervalFromStart(types.TimeString("09:00"), 90)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), interval.End)
	assert.Equal(t, 90, interval.DurationMinutes())

	_, err = IntervalFromStart(types.TimeString("09:00"), 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = IntervalFromStart(types.TimeString("09:00"), -30)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// Конец вышел за пределы суток
	_, err = IntervalFromStart(types.TimeString("23:30"), 60)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestTimeInterval_Overlaps(t *testing.T) {
	base := mustInterval(t, "10:00", "11:00")

	tests := []struct {
		name  string
		other TimeInterval
		want  bool
	}{
		{name: "identical", other: mustInterval(t, "10:00", "11:00"), want: true},
		{name: "partial overlap left", other: mustInterval(t, "09:30", "10:30"), want: true},
		{name: "partial overlap right", other: mustInterval(t, "10:30", "11:30"), want: true},
		{name: "contained", other: mustInterval(t, "10:15", "10:45"), want: true},
		{name: "containing", other: mustInterval(t, "09:00", "12:00"), want: true},
		{name: "touching before", other: mustInterval(t, "09:00", "10:00"), want: false},
		{name: "touching after", other: mustInterval(t, "11:00", "12:00"), want: false},
		{name: "disjoint before", other: mustInterval(t, "08:00", "09:00"), want: false},
		{name: "disjoint after", other: mustInterval(t, "12:00", "13:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestTimeInterval_Contains(t *testing.T) {
	workday := mustInterval(t, "09:00", "18:00")

	assert.True(t, workday.Contains(mustInterval(t, "09:00", "10:00")))
	assert.True(t, workday.Contains(mustInterval(t, "17:00", "18:00")))
	assert.True(t, workday.Contains(mustInterval(t, "09:00", "18:00")))
	assert.False(t, workday.Contains(mustInterval(t, "08:30", "09:30")))
	assert.False(t, workday.Contains(mustInterval(t, "17:30", "18:30")))
	assert.False(t, workday.Contains(mustInterval(t, "08:00", "19:00")))
}

func TestTimeInterval_String(t *testing.T) {
	assert.Equal(t, "09:00-09:30", mustInterval(t, "09:00", "09:30").String())
}
