package domain

import (
	"math"
	"time"
)

// IsWeekend returns true if the date's weekday is in the weekend set
// An empty set falls back to DefaultWeekendDays
func IsWeekend(date time.Time, weekendDays []time.Weekday) bool {
	days := weekendDays
	if len(days) == 0 {
		days = DefaultWeekendDays
	}
	for _, d := range days {
		if date.Weekday() == d {
			return true
		}
	}
	return false
}

// CalculatePrice returns the base amount for slotCount slots on the given date
//
// Почасовая ставка корта делится на количество слотов в часе;
// выходные дни берутся из настроек, а не из жёсткого Sat/Sun
func CalculatePrice(court *Court, slotCount int, date time.Time, weekendDays []time.Weekday) float64 {
	perSlot := court.HourlyRate(date, weekendDays) / SlotsPerHour
	return perSlot * float64(slotCount)
}

// ApplyDiscount applies the discount to base and returns the final amount:
// clamped to zero at minimum, rounded up to a whole unit of currency
func ApplyDiscount(base float64, discount Discount) float64 {
	final := base

	switch discount.Type {
	case DiscountPercent:
		final = base * (1 - discount.Value/100)
	case DiscountFlat:
		final = base - discount.Value
	}

	if final < 0 {
		final = 0
	}

	return math.Ceil(final)
}
