package models

import (
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// Request модели

// CreateRuleRequest запрос на создание правила повторения
type CreateRuleRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CourtID       int64  `json:"courtId"`

	RecurrenceType string `json:"recurrenceType"`       // WEEKLY или MONTHLY
	Weekdays       []int  `json:"weekdays,omitempty"`   // WEEKLY: 0=Sunday..6=Saturday
	DayOfMonth     int    `json:"dayOfMonth,omitempty"` // MONTHLY: 1..31

	StartTime string  `json:"startTime"` // "HH:MM"
	EndTime   string  `json:"endTime"`   // "HH:MM"
	StartDate string  `json:"startDate"` // "YYYY-MM-DD"
	EndDate   *string `json:"endDate,omitempty"`

	MonthlyAmount float64 `json:"monthlyAmount"`
	AdvanceAmount float64 `json:"advanceAmount"`
	DiscountType  string  `json:"discountType,omitempty"` // NONE/PERCENT/FLAT
	DiscountValue float64 `json:"discountValue,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса правила
type UpdateStatusRequest struct {
	Status string `json:"status"` // ACTIVE или PAUSED
}

// Response модели

// RuleResponse ответ с данными правила повторения
type RuleResponse struct {
	ID            int64  `json:"id"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CourtID       int64  `json:"courtId"`

	RecurrenceType string `json:"recurrenceType"`
	Weekdays       []int  `json:"weekdays,omitempty"`
	DayOfMonth     int    `json:"dayOfMonth,omitempty"`

	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate,omitempty"`

	MonthlyAmount float64 `json:"monthlyAmount"`
	AdvanceAmount float64 `json:"advanceAmount"`
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`

	Status    string    `json:"status"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RuleListResponse список правил
type RuleListResponse struct {
	Rules []*RuleResponse `json:"rules"`
	Total int             `json:"total"`
}

// DeleteRuleResponse итог удаления правила
type DeleteRuleResponse struct {
	RuleID          int64 `json:"ruleId"`
	RemovedBookings int64 `json:"removedBookings"` // Удаленные будущие брони правила
}

// FromDomainRule конвертирует domain правило в response
func FromDomainRule(r *domain.RecurringRule) *RuleResponse {
	weekdays := make([]int, len(r.Weekdays))
	for i, d := range r.Weekdays {
		weekdays[i] = int(d)
	}

	var endDate *string
	if r.EndDate != nil {
		formatted := r.EndDate.Format(domain.DateFormat)
		endDate = &formatted
	}

	return &RuleResponse{
		ID:             r.ID,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		CourtID:        r.CourtID,
		RecurrenceType: string(r.RecurrenceType),
		Weekdays:       weekdays,
		DayOfMonth:     r.DayOfMonth,
		StartTime:      r.StartTime.String(),
		EndTime:        r.EndTime.String(),
		StartDate:      r.StartDate.Format(domain.DateFormat),
		EndDate:        endDate,
		MonthlyAmount:  r.MonthlyAmount,
		AdvanceAmount:  r.AdvanceAmount,
		DiscountType:   string(r.Discount.Type),
		DiscountValue:  r.Discount.Value,
		Status:         string(r.Status),
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// FromDomainRuleList конвертирует список domain правил в response
func FromDomainRuleList(rules []*domain.RecurringRule) *RuleListResponse {
	items := make([]*RuleResponse, len(rules))
	for i, r := range rules {
		items[i] = FromDomainRule(r)
	}
	return &RuleListResponse{
		Rules: items,
		Total: len(items),
	}
}
