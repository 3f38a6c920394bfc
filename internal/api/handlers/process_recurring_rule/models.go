package process_recurring_rule

import (
	processRecurring "github.com/m04kA/SMC-CourtService/internal/usecase/process_recurring"
)

// DateFailure пропущенная дата в HTTP ответе
type DateFailure struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// ProcessReportResponse HTTP response model
type ProcessReportResponse struct {
	RuleID     int64         `json:"ruleId"`
	TotalDates int           `json:"totalDates"`
	Success    int           `json:"success"`
	Failed     int           `json:"failed"`
	Conflicts  []DateFailure `json:"conflicts"`
	BookingIDs []int64       `json:"bookingIds"`
}

// FromUseCaseReport конвертирует отчет use case в HTTP модель
func FromUseCaseReport(report *processRecurring.Report) *ProcessReportResponse {
	conflicts := make([]DateFailure, len(report.Failures))
	for i, f := range report.Failures {
		conflicts[i] = DateFailure{Date: f.Date, Reason: f.Reason}
	}
	return &ProcessReportResponse{
		RuleID:     report.RuleID,
		TotalDates: report.TotalDates,
		Success:    report.Success,
		Failed:     len(report.Failures),
		Conflicts:  conflicts,
		BookingIDs: report.BookingIDs,
	}
}
