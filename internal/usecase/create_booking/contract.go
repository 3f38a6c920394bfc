package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	FindBooked(ctx context.Context, courtID int64, date time.Time, slotTimes []types.TimeString, excludeBookingID *int64) ([]types.TimeString, error)
	CreateBatch(ctx context.Context, slots []*domain.BookingSlot) error
	DeleteStale(ctx context.Context, courtID int64, date time.Time, slotTimes []types.TimeString) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
}

// SettingsProvider интерфейс для чтения настроек комплекса
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.Settings, error)
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
