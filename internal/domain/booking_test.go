package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourtService/pkg/types"
)

func TestBooking_IsExpiredAt(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		date    time.Time
		endTime string
		want    bool
	}{
		{
			name:    "previous day",
			date:    time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC),
			endTime: "23:00",
			want:    true,
		},
		{
			name:    "same day ended earlier",
			date:    time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			endTime: "11:00",
			want:    true,
		},
		{
			name:    "same day ends exactly now",
			date:    time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			endTime: "12:00",
			want:    true,
		},
		{
			name:    "same day still running",
			date:    time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			endTime: "13:00",
			want:    false,
		},
		{
			name:    "future day",
			date:    time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
			endTime: "09:00",
			want:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &Booking{
				BookingDate: tc.date,
				EndTime:     types.TimeString(tc.endTime),
				Status:      BookingStatusBooked,
			}
			assert.Equal(t, tc.want, b.IsExpiredAt(now))
		})
	}
}

func TestBooking_StatusTransitions(t *testing.T) {
	booked := &Booking{Status: BookingStatusBooked}
	cancelled := &Booking{Status: BookingStatusCancelled}
	completed := &Booking{Status: BookingStatusCompleted}

	assert.True(t, booked.CanBeCancelled())
	assert.True(t, booked.CanBeCompleted())
	assert.False(t, booked.CanBeReactivated())

	assert.False(t, cancelled.CanBeCancelled())
	assert.True(t, cancelled.CanBeReactivated())

	assert.False(t, completed.CanBeCompleted())
	assert.True(t, completed.CanBeReactivated())
}

func TestNormalizeDate(t *testing.T) {
	d := NormalizeDate(time.Date(2026, 1, 10, 18, 45, 30, 999, time.UTC))
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), d)
}
