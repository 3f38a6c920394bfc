package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "BOOKED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// BookingSource describes how a booking was created
type BookingSource string

const (
	SourceManual    BookingSource = "MANUAL"
	SourceRecurring BookingSource = "RECURRING"
)

// DiscountType represents the kind of discount applied to a booking
type DiscountType string

const (
	DiscountNone    DiscountType = "NONE"
	DiscountPercent DiscountType = "PERCENT"
	DiscountFlat    DiscountType = "FLAT"
)

// Discount applied to the base amount of a booking
type Discount struct {
	Type  DiscountType
	Value float64
}

// Booking represents a confirmed reservation of a court for a time range
// BookingDate carries only the date component, time-of-day is always midnight
type Booking struct {
	ID            int64
	CustomerName  string
	CustomerPhone string
	SportType     SportType
	CourtID       int64
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	SlotCount     int
	BaseAmount    float64
	Discount      Discount
	FinalAmount   float64
	Status        BookingStatus
	Source        BookingSource

	// RecurringRuleID ссылка на породившее правило, только для source=RECURRING
	RecurringRuleID *int64

	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeCancelled returns true if the booking can transition to CANCELLED
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusBooked
}

// CanBeCompleted returns true if the booking can transition to COMPLETED
func (b *Booking) CanBeCompleted() bool {
	return b.Status == BookingStatusBooked
}

// CanBeReactivated returns true if the booking can go back to BOOKED
// Reactivation always requires a fresh availability check
func (b *Booking) CanBeReactivated() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusCompleted
}

// IsExpiredAt returns true if the scheduled end of the booking has passed
func (b *Booking) IsExpiredAt(now time.Time) bool {
	today := NormalizeDate(now)
	bookingDate := NormalizeDate(b.BookingDate)

	if bookingDate.Before(today) {
		return true
	}
	if bookingDate.Equal(today) {
		nowTime := types.NewTimeString(now)
		return !b.EndTime.IsAfter(nowTime)
	}
	return false
}

// NormalizeDate обнуляет компонент времени, оставляя только дату
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay returns true if both timestamps fall on the same calendar day
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
