package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtService/pkg/types"
)

func TestGenerateSlots(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{
			name:  "one hour gives four slots",
			start: "10:00",
			end:   "11:00",
			want:  []string{"10:00", "10:15", "10:30", "10:45"},
		},
		{
			name:  "single slot",
			start: "06:00",
			end:   "06:15",
			want:  []string{"06:00"},
		},
		{
			name:  "ninety minutes",
			start: "18:30",
			end:   "20:00",
			want:  []string{"18:30", "18:45", "19:00", "19:15", "19:30", "19:45"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots, err := GenerateSlots(types.TimeString(tc.start), types.TimeString(tc.end))
			require.NoError(t, err)

			labels := make([]string, len(slots))
			for i, s := range slots {
				labels[i] = s.String()
			}
			assert.Equal(t, tc.want, labels)
		})
	}
}

func TestGenerateSlots_EndNotIncluded(t *testing.T) {
	slots, err := GenerateSlots(types.TimeString("10:00"), types.TimeString("11:00"))
	require.NoError(t, err)

	for _, s := range slots {
		assert.NotEqual(t, "11:00", s.String())
	}
}

func TestGenerateSlots_InvalidRange(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
	}{
		{name: "end equals start", start: "10:00", end: "10:00"},
		{name: "end before start", start: "12:00", end: "10:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateSlots(types.TimeString(tc.start), types.TimeString(tc.end))
			assert.ErrorIs(t, err, ErrInvalidTimeRange)
		})
	}
}

func TestGenerateSlots_UnalignedBoundary(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
	}{
		{name: "end off the grid", start: "06:00", end: "06:20"},
		{name: "start off the grid", start: "06:05", end: "06:30"},
		{name: "end clamped short of midnight", start: "23:45", end: "23:59"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateSlots(types.TimeString(tc.start), types.TimeString(tc.end))
			assert.ErrorIs(t, err, ErrInvalidSlotBoundary)
		})
	}
}

func TestGenerateSlots_SlotCountMatchesDuration(t *testing.T) {
	slots, err := GenerateSlots(types.TimeString("06:00"), types.TimeString("23:00"))
	require.NoError(t, err)
	assert.Len(t, slots, 17*SlotsPerHour)
}
