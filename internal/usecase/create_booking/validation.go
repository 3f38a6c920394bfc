package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}
	if len(req.CustomerPhone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customerPhone is too long", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if err := validateDiscount(req.Discount); err != nil {
		return err
	}

	if req.AdvanceAmount < 0 {
		return fmt.Errorf("%w: advanceAmount must not be negative", ErrInvalidInput)
	}
	if !req.PaymentMode.IsValid() {
		return fmt.Errorf("%w: unknown payment mode %q", ErrInvalidInput, req.PaymentMode)
	}

	if req.Source != domain.SourceManual && req.Source != domain.SourceRecurring {
		return fmt.Errorf("%w: unknown booking source %q", ErrInvalidInput, req.Source)
	}
	if req.Source == domain.SourceRecurring && req.RecurringRuleID == nil {
		return fmt.Errorf("%w: recurring bookings must reference their rule", ErrInvalidInput)
	}

	return nil
}

// validateDiscount проверяет корректность скидки
func validateDiscount(d domain.Discount) error {
	switch d.Type {
	case domain.DiscountNone:
		return nil
	case domain.DiscountPercent:
		if d.Value < 0 || d.Value > domain.MaxPercentDiscount {
			return fmt.Errorf("%w: percent discount must be between 0 and %d", ErrInvalidInput, domain.MaxPercentDiscount)
		}
	case domain.DiscountFlat:
		if d.Value < 0 {
			return fmt.Errorf("%w: flat discount must not be negative", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, d.Type)
	}
	return nil
}
