package bookingslot

import "errors"

var (
	// ErrSlotTaken возвращается при нарушении уникальности активного слота:
	// кто-то успел занять (court, date, slot_time) между проверкой и вставкой
	ErrSlotTaken = errors.New("bookingslot.repository: slot is already booked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bookingslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bookingslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bookingslot.repository: failed to scan row")
)
