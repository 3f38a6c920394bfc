package check_availability

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("check_availability: court not found")

	// ErrInvalidTimeRange возвращается, когда диапазон времени не даёт ни одного слота
	ErrInvalidTimeRange = errors.New("check_availability: invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
