package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "10:15"},
		{name: "midnight", input: "00:00"},
		{name: "last minute", input: "23:59"},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "10:60", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.input, got.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:45").AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, "11:00", got.String())

	// Конец дня не перескакивает на следующие сутки
	got, err = TimeString("23:45").AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, "23:59", got.String())

	_, err = TimeString("23:50").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("11:00").IsAfter(TimeString("10:30")))
}

func TestTimeString_MinutesUntil(t *testing.T) {
	d, err := TimeString("10:00").MinutesUntil(TimeString("11:30"))
	require.NoError(t, err)
	assert.Equal(t, 90, d)

	d, err = TimeString("12:00").MinutesUntil(TimeString("11:00"))
	require.NoError(t, err)
	assert.Equal(t, -60, d)
}
