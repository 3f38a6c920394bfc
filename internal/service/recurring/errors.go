package recurring

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило не найдено
	ErrRuleNotFound = errors.New("recurring rule not found")

	// ErrCourtNotFound возвращается, когда корт правила не найден
	ErrCourtNotFound = errors.New("court not found")

	// ErrCourtInactive возвращается, когда корт правила не принимает брони
	ErrCourtInactive = errors.New("court is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
