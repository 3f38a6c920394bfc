package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	FindBooked(ctx context.Context, courtID int64, date time.Time, slotTimes []types.TimeString, excludeBookingID *int64) ([]types.TimeString, error)
	UpdateStatusByBooking(ctx context.Context, bookingID int64, status domain.SlotStatus) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	UpdateAmounts(ctx context.Context, bookingID int64, total, advance float64) error
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
