package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// SlotStatus represents the status of a single reserved slot row
type SlotStatus string

const (
	SlotStatusBooked    SlotStatus = "BOOKED"
	SlotStatusCancelled SlotStatus = "CANCELLED"
	SlotStatusCompleted SlotStatus = "COMPLETED"
)

// BookingSlot is one 15-minute reservation unit consumed by a booking
//
// Инвариант: для (CourtID, BookingDate, SlotTime) одновременно может
// существовать не больше одной строки со статусом BOOKED. Обеспечивается
// частичным уникальным индексом booking_slots_active_uniq
type BookingSlot struct {
	ID          int64
	CourtID     int64
	BookingID   int64
	BookingDate time.Time
	SlotTime    types.TimeString
	Status      SlotStatus
	CreatedAt   time.Time
}

// GenerateSlots expands a same-day time range into ordered slot start labels
// at the fixed 15-minute cadence, start inclusive, end exclusive. Both
// boundaries must fall on the slot grid, so len(slots) == (end-start)/15
//
// Operating-hours bounds are the caller's responsibility
func GenerateSlots(start, end types.TimeString) ([]types.TimeString, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return nil, err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return nil, err
	}

	if endMin <= startMin {
		return nil, ErrInvalidTimeRange
	}
	// Невыровненная граница дала бы диапазон, не сводящийся к целым слотам
	if startMin%SlotDurationMinutes != 0 || endMin%SlotDurationMinutes != 0 {
		return nil, ErrInvalidSlotBoundary
	}

	slots := make([]types.TimeString, 0, (endMin-startMin)/SlotDurationMinutes)
	current := start

	for {
		currentMin, err := current.Minutes()
		if err != nil {
			return nil, err
		}
		if currentMin >= endMin {
			break
		}

		slots = append(slots, current)

		current, err = current.AddMinutes(SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
	}

	return slots, nil
}
