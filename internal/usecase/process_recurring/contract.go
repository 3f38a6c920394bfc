package process_recurring

import (
	"context"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/internal/usecase/create_booking"
)

// RuleRepository интерфейс репозитория правил повторения
type RuleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RecurringRule, error)
}

// BookingCreator интерфейс создания одиночного бронирования
// Внутри транзакции процессора создатель присоединяется к ней
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
