package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Settings is the singleton facility configuration
// Slot duration is fixed at 15 minutes and is not part of the mutable settings
type Settings struct {
	ID          int64
	OpenTime    types.TimeString
	CloseTime   types.TimeString
	WeekendDays []time.Weekday
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultSettings возвращает настройки по умолчанию
// Создаются лениво при первом чтении, если записи ещё нет
func DefaultSettings() *Settings {
	return &Settings{
		OpenTime:    types.TimeString(DefaultOpenTime),
		CloseTime:   types.TimeString(DefaultCloseTime),
		WeekendDays: append([]time.Weekday(nil), DefaultWeekendDays...),
		Currency:    DefaultCurrency,
	}
}
