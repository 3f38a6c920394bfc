package bookings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotComplete возвращается, когда бронирование не может быть завершено
	ErrCannotComplete = errors.New("booking cannot be completed")

	// ErrCannotReactivate возвращается, когда бронирование не может быть реактивировано
	ErrCannotReactivate = errors.New("booking cannot be reactivated")

	// ErrSlotConflict возвращается, когда слоты брони успели занять
	ErrSlotConflict = errors.New("slot conflict")

	// ErrAdvanceExceedsTotal возвращается, когда аванс больше итоговой суммы
	ErrAdvanceExceedsTotal = errors.New("advance exceeds total amount")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// SlotConflictError ошибка реактивации с перечнем занятых слотов
type SlotConflictError struct {
	Slots []string
}

// Error возвращает текст ошибки с занятыми слотами
func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSlotConflict, strings.Join(e.Slots, ", "))
}

// Is позволяет errors.Is(err, ErrSlotConflict) узнавать эту ошибку
func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}
