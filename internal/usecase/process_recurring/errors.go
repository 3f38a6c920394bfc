package process_recurring

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило не найдено
	ErrRuleNotFound = errors.New("process_recurring: recurring rule not found")

	// ErrRuleNotActive возвращается при попытке материализовать правило в паузе
	ErrRuleNotActive = errors.New("process_recurring: recurring rule is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("process_recurring: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("process_recurring: internal error")
)
