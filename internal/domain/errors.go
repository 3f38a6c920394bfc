package domain

import "errors"

var (
	// ErrInvalidTimeRange возвращается, когда конец диапазона не позже начала
	ErrInvalidTimeRange = errors.New("domain: end time must be after start time")

	// ErrInvalidSlotBoundary возвращается, когда граница диапазона не кратна длительности слота
	ErrInvalidSlotBoundary = errors.New("domain: time must align to slot boundary")
)
