package domain

import "time"

// PaymentMode represents how the customer pays
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeUPI    PaymentMode = "UPI"
	PaymentModeCard   PaymentMode = "CARD"
	PaymentModeOnline PaymentMode = "ONLINE"
)

// ValidPaymentModes все поддерживаемые способы оплаты
var ValidPaymentModes = []PaymentMode{
	PaymentModeCash,
	PaymentModeUPI,
	PaymentModeCard,
	PaymentModeOnline,
}

// IsValid returns true if the payment mode is one of the supported values
func (m PaymentMode) IsValid() bool {
	for _, v := range ValidPaymentModes {
		if m == v {
			return true
		}
	}
	return false
}

// PaymentStatus derived from advance vs total
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// Payment is the one-to-one payment record of a booking
type Payment struct {
	ID            int64
	BookingID     int64
	TotalAmount   float64
	AdvanceAmount float64
	BalanceAmount float64
	Mode          PaymentMode
	Status        PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DerivePaymentStatus возвращает статус оплаты по авансу и полной сумме:
// PENDING если аванса нет, PAID если аванс покрывает сумму, иначе PARTIAL
func DerivePaymentStatus(total, advance float64) PaymentStatus {
	switch {
	case advance <= 0:
		return PaymentStatusPending
	case advance >= total:
		return PaymentStatusPaid
	default:
		return PaymentStatusPartial
	}
}

// PaymentBalance возвращает остаток к оплате, не меньше нуля
func PaymentBalance(total, advance float64) float64 {
	balance := total - advance
	if balance < 0 {
		return 0
	}
	return balance
}
