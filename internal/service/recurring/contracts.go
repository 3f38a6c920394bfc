package recurring

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// RuleRepository интерфейс репозитория правил повторения
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.RecurringRule) (*domain.RecurringRule, error)
	GetByID(ctx context.Context, id int64) (*domain.RecurringRule, error)
	List(ctx context.Context, status *domain.RuleStatus) ([]*domain.RecurringRule, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RuleStatus) error
	Delete(ctx context.Context, id int64) error
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	DeleteFutureByRule(ctx context.Context, ruleID int64, from time.Time) (int64, error)
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
