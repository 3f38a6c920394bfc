package check_availability

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

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	FindBooked(ctx context.Context, courtID int64, date time.Time, slotTimes []types.TimeString, excludeBookingID *int64) ([]types.TimeString, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
