package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента
	CourtID       int64            // ID корта
	Date          time.Time        // Дата бронирования (компонент времени игнорируется)
	StartTime     types.TimeString // Время начала (например, "06:00")
	EndTime       types.TimeString // Время конца, не включается в бронь

	Discount      domain.Discount    // Скидка (NONE/PERCENT/FLAT)
	AdvanceAmount float64            // Внесённый аванс
	PaymentMode   domain.PaymentMode // Способ оплаты
	MarkPaid      bool               // Принудительно считать бронь полностью оплаченной

	Source          domain.BookingSource // MANUAL или RECURRING
	RecurringRuleID *int64               // Ссылка на правило для source=RECURRING

	// SkipAvailabilityCheck пропустить предварительную проверку занятости
	// Уникальный индекс активных слотов остаётся последней линией защиты
	SkipAvailabilityCheck bool

	CreatedBy int64 // ID сотрудника, создавшего бронь
}

// Response модель ответа с созданным бронированием и платежом
type Response struct {
	ID            int64
	CustomerName  string
	CustomerPhone string
	SportType     string
	CourtID       int64
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	SlotCount     int

	BaseAmount    float64
	DiscountType  string
	DiscountValue float64
	FinalAmount   float64

	Status          string
	Source          string
	RecurringRuleID *int64

	PaymentID     int64
	AdvanceAmount float64
	BalanceAmount float64
	PaymentMode   string
	PaymentStatus string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func buildResponse(b *domain.Booking, p *domain.Payment) *Response {
	return &Response{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		SportType:       string(b.SportType),
		CourtID:         b.CourtID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		SlotCount:       b.SlotCount,
		BaseAmount:      b.BaseAmount,
		DiscountType:    string(b.Discount.Type),
		DiscountValue:   b.Discount.Value,
		FinalAmount:     b.FinalAmount,
		Status:          string(b.Status),
		Source:          string(b.Source),
		RecurringRuleID: b.RecurringRuleID,
		PaymentID:       p.ID,
		AdvanceAmount:   p.AdvanceAmount,
		BalanceAmount:   p.BalanceAmount,
		PaymentMode:     string(p.Mode),
		PaymentStatus:   string(p.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
