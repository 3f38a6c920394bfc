package create_booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("create_booking: court not found")

	// ErrCourtInactive возвращается, когда корт не принимает бронирования
	ErrCourtInactive = errors.New("create_booking: court is not active")

	// ErrInvalidTimeRange возвращается, когда диапазон времени не даёт ни одного слота
	ErrInvalidTimeRange = errors.New("create_booking: invalid time range")

	// ErrSlotConflict возвращается, когда хотя бы один запрошенный слот занят
	// Конкретные слоты доступны через SlotConflictError (errors.As)
	ErrSlotConflict = errors.New("create_booking: slot conflict")

	// ErrAdvanceExceedsTotal возвращается, когда аванс больше итоговой суммы
	ErrAdvanceExceedsTotal = errors.New("create_booking: advance exceeds total amount")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotConflictError ошибка конфликта с перечнем занятых слотов
// Создается и при провале предварительной проверки, и при проигрыше гонки
// на вставке - вызывающий видит один и тот же класс ошибки
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
