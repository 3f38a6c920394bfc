package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot configuration
const (
	// SlotDurationMinutes фиксированная длительность слота, не настраивается
	SlotDurationMinutes = 15

	// SlotsPerHour количество слотов в одном часе
	SlotsPerHour = 60 / SlotDurationMinutes
)

// Default settings values
const (
	DefaultOpenTime  = "06:00"
	DefaultCloseTime = "23:00"
	DefaultCurrency  = "INR"
)

// DefaultRecurrenceMonths окно генерации дат для правил без конечной даты,
// если значение не переопределено конфигурацией
const DefaultRecurrenceMonths = 3

// Business validation constants
const (
	MaxCustomerNameLength  = 120
	MaxCustomerPhoneLength = 20
	MaxPercentDiscount     = 100
)

// DefaultWeekendDays дни недели, считающиеся выходными по умолчанию
var DefaultWeekendDays = []time.Weekday{time.Saturday, time.Sunday}
