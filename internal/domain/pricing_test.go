package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Среда и суббота для проверки будничного и выходного тарифа
var (
	wednesday = time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	saturday  = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
)

func testCourt() *Court {
	return &Court{
		ID:          1,
		Name:        "Центральный корт",
		SportType:   SportBadminton,
		WeekdayRate: 400,
		WeekendRate: 600,
		Status:      CourtStatusActive,
	}
}

func TestCalculatePrice(t *testing.T) {
	court := testCourt()

	cases := []struct {
		name      string
		slotCount int
		date      time.Time
		want      float64
	}{
		{name: "one weekday hour", slotCount: 4, date: wednesday, want: 400},
		{name: "one weekend hour", slotCount: 4, date: saturday, want: 600},
		{name: "single weekday slot", slotCount: 1, date: wednesday, want: 100},
		{name: "ninety weekend minutes", slotCount: 6, date: saturday, want: 900},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculatePrice(court, tc.slotCount, tc.date, DefaultWeekendDays)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculatePrice_CustomWeekendDays(t *testing.T) {
	court := testCourt()

	// Комплекс, где выходной - среда
	weekend := []time.Weekday{time.Wednesday}

	assert.Equal(t, float64(600), CalculatePrice(court, 4, wednesday, weekend))
	assert.Equal(t, float64(400), CalculatePrice(court, 4, saturday, weekend))
}

func TestApplyDiscount(t *testing.T) {
	cases := []struct {
		name     string
		base     float64
		discount Discount
		want     float64
	}{
		{name: "no discount", base: 400, discount: Discount{Type: DiscountNone}, want: 400},
		{name: "fifty percent", base: 400, discount: Discount{Type: DiscountPercent, Value: 50}, want: 200},
		{name: "flat hundred", base: 400, discount: Discount{Type: DiscountFlat, Value: 100}, want: 300},
		{name: "flat exceeds base clamps to zero", base: 400, discount: Discount{Type: DiscountFlat, Value: 500}, want: 0},
		{name: "hundred percent", base: 400, discount: Discount{Type: DiscountPercent, Value: 100}, want: 0},
		{name: "fraction rounds up", base: 333, discount: Discount{Type: DiscountPercent, Value: 10}, want: 300},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ApplyDiscount(tc.base, tc.discount))
		})
	}
}

func TestIsWeekend_EmptySetFallsBack(t *testing.T) {
	assert.True(t, IsWeekend(saturday, nil))
	assert.False(t, IsWeekend(wednesday, nil))
}
