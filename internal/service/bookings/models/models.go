package models

import (
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// Request модели

// UpdatePaymentRequest запрос на изменение внесённого аванса
type UpdatePaymentRequest struct {
	AdvanceAmount float64 `json:"advanceAmount"`
}

// Response модели

// PaymentInfo платежная часть ответа по бронированию
type PaymentInfo struct {
	ID            int64   `json:"id"`
	TotalAmount   float64 `json:"totalAmount"`
	AdvanceAmount float64 `json:"advanceAmount"`
	BalanceAmount float64 `json:"balanceAmount"`
	Mode          string  `json:"mode"`
	Status        string  `json:"status"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64        `json:"id"`
	CustomerName    string       `json:"customerName"`
	CustomerPhone   string       `json:"customerPhone"`
	SportType       string       `json:"sportType"`
	CourtID         int64        `json:"courtId"`
	BookingDate     string       `json:"bookingDate"` // "2026-01-15"
	StartTime       string       `json:"startTime"`   // "10:00"
	EndTime         string       `json:"endTime"`     // "11:00"
	SlotCount       int          `json:"slotCount"`
	BaseAmount      float64      `json:"baseAmount"`
	DiscountType    string       `json:"discountType"`
	DiscountValue   float64      `json:"discountValue"`
	FinalAmount     float64      `json:"finalAmount"`
	Status          string       `json:"status"`
	Source          string       `json:"source"`
	RecurringRuleID *int64       `json:"recurringRuleId,omitempty"`
	Payment         *PaymentInfo `json:"payment,omitempty"`
	CreatedBy       int64        `json:"createdBy"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain бронирование в response
func FromDomainBooking(b *domain.Booking, p *domain.Payment) *BookingResponse {
	resp := &BookingResponse{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		SportType:       string(b.SportType),
		CourtID:         b.CourtID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		SlotCount:       b.SlotCount,
		BaseAmount:      b.BaseAmount,
		DiscountType:    string(b.Discount.Type),
		DiscountValue:   b.Discount.Value,
		FinalAmount:     b.FinalAmount,
		Status:          string(b.Status),
		Source:          string(b.Source),
		RecurringRuleID: b.RecurringRuleID,
		CreatedBy:       b.CreatedBy,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if p != nil {
		resp.Payment = &PaymentInfo{
			ID:            p.ID,
			TotalAmount:   p.TotalAmount,
			AdvanceAmount: p.AdvanceAmount,
			BalanceAmount: p.BalanceAmount,
			Mode:          string(p.Mode),
			Status:        string(p.Status),
		}
	}
	return resp
}

// FromDomainBookingList конвертирует список domain бронирований в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	items := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = FromDomainBooking(b, nil)
	}
	return &BookingListResponse{
		Bookings: items,
		Total:    len(items),
	}
}
