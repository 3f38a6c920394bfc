package models

import (
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// UpdateSettingsRequest запрос на изменение настроек комплекса
// Nil-поля остаются без изменений
type UpdateSettingsRequest struct {
	OpenTime    *string `json:"openTime,omitempty"`  // "HH:MM"
	CloseTime   *string `json:"closeTime,omitempty"` // "HH:MM"
	WeekendDays *[]int  `json:"weekendDays,omitempty"`
	Currency    *string `json:"currency,omitempty"`
}

// SettingsResponse ответ с настройками комплекса
type SettingsResponse struct {
	OpenTime    string    `json:"openTime"`
	CloseTime   string    `json:"closeTime"`
	WeekendDays []int     `json:"weekendDays"`
	Currency    string    `json:"currency"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain настройки в response
func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	weekendDays := make([]int, len(s.WeekendDays))
	for i, d := range s.WeekendDays {
		weekendDays[i] = int(d)
	}
	return &SettingsResponse{
		OpenTime:    s.OpenTime.String(),
		CloseTime:   s.CloseTime.String(),
		WeekendDays: weekendDays,
		Currency:    s.Currency,
		UpdatedAt:   s.UpdatedAt,
	}
}
