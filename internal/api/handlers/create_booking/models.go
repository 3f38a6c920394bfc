package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	createBooking "github.com/m04kA/SMC-CourtService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CourtID       int64   `json:"courtId"`
	Date          string  `json:"date"`      // "YYYY-MM-DD"
	StartTime     string  `json:"startTime"` // "HH:MM"
	EndTime       string  `json:"endTime"`   // "HH:MM"
	DiscountType  string  `json:"discountType,omitempty"`
	DiscountValue float64 `json:"discountValue,omitempty"`
	AdvanceAmount float64 `json:"advanceAmount,omitempty"`
	PaymentMode   string  `json:"paymentMode"`
	MarkPaid      bool    `json:"markPaid,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(createdBy int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	discount := domain.Discount{Type: domain.DiscountNone}
	if r.DiscountType != "" {
		discount = domain.Discount{
			Type:  domain.DiscountType(r.DiscountType),
			Value: r.DiscountValue,
		}
	}

	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CourtID:       r.CourtID,
		Date:          date,
		StartTime:     startTime,
		EndTime:       endTime,
		Discount:      discount,
		AdvanceAmount: r.AdvanceAmount,
		PaymentMode:   domain.PaymentMode(r.PaymentMode),
		MarkPaid:      r.MarkPaid,
		Source:        domain.SourceManual,
		CreatedBy:     createdBy,
	}, nil
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID              int64   `json:"id"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	SportType       string  `json:"sportType"`
	CourtID         int64   `json:"courtId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	SlotCount       int     `json:"slotCount"`
	BaseAmount      float64 `json:"baseAmount"`
	DiscountType    string  `json:"discountType"`
	DiscountValue   float64 `json:"discountValue"`
	FinalAmount     float64 `json:"finalAmount"`
	Status          string  `json:"status"`
	Source          string  `json:"source"`
	AdvanceAmount   float64 `json:"advanceAmount"`
	BalanceAmount   float64 `json:"balanceAmount"`
	PaymentMode     string  `json:"paymentMode"`
	PaymentStatus   string  `json:"paymentStatus"`
	RecurringRuleID *int64  `json:"recurringRuleId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:              resp.ID,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		SportType:       resp.SportType,
		CourtID:         resp.CourtID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		SlotCount:       resp.SlotCount,
		BaseAmount:      resp.BaseAmount,
		DiscountType:    resp.DiscountType,
		DiscountValue:   resp.DiscountValue,
		FinalAmount:     resp.FinalAmount,
		Status:          resp.Status,
		Source:          resp.Source,
		AdvanceAmount:   resp.AdvanceAmount,
		BalanceAmount:   resp.BalanceAmount,
		PaymentMode:     resp.PaymentMode,
		PaymentStatus:   resp.PaymentStatus,
		RecurringRuleID: resp.RecurringRuleID,
	}
}
