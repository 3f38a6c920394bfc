package check_availability

import "fmt"

// validateRequest проверяет корректность данных запроса
func validateRequest(req *Request) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: court_id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start_time: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end_time: %v", ErrInvalidInput, err)
	}
	if req.ExcludeBookingID != nil && *req.ExcludeBookingID <= 0 {
		return fmt.Errorf("%w: exclude_booking_id must be positive", ErrInvalidInput)
	}
	return nil
}
