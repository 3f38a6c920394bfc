package models

import (
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// Request модели

// CreateCourtRequest запрос на создание корта
type CreateCourtRequest struct {
	Name        string  `json:"name"`
	SportType   string  `json:"sportType"`
	WeekdayRate float64 `json:"weekdayRate"`
	WeekendRate float64 `json:"weekendRate"`
}

// UpdateStatusRequest запрос на смену статуса корта
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// CourtResponse ответ с данными корта
type CourtResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	SportType   string    `json:"sportType"`
	WeekdayRate float64   `json:"weekdayRate"`
	WeekendRate float64   `json:"weekendRate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CourtListResponse список кортов
type CourtListResponse struct {
	Courts []*CourtResponse `json:"courts"`
	Total  int              `json:"total"`
}

// FromDomainCourt конвертирует domain корт в response
func FromDomainCourt(c *domain.Court) *CourtResponse {
	return &CourtResponse{
		ID:          c.ID,
		Name:        c.Name,
		SportType:   string(c.SportType),
		WeekdayRate: c.WeekdayRate,
		WeekendRate: c.WeekendRate,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromDomainCourtList конвертирует список domain кортов в response
func FromDomainCourtList(courts []*domain.Court) *CourtListResponse {
	items := make([]*CourtResponse, len(courts))
	for i, c := range courts {
		items[i] = FromDomainCourt(c)
	}
	return &CourtListResponse{
		Courts: items,
		Total:  len(items),
	}
}
