package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// RecurrenceType represents how a rule repeats
type RecurrenceType string

const (
	RecurrenceWeekly  RecurrenceType = "WEEKLY"
	RecurrenceMonthly RecurrenceType = "MONTHLY"
)

// RuleStatus represents whether a rule is materialized by the processor
type RuleStatus string

const (
	RuleStatusActive RuleStatus = "ACTIVE"
	RuleStatusPaused RuleStatus = "PAUSED"
)

// RecurringRule is a template that expands into concrete bookings
// It is not a booking itself; generated bookings reference it via RecurringRuleID
type RecurringRule struct {
	ID            int64
	CustomerName  string
	CustomerPhone string
	CourtID       int64

	RecurrenceType RecurrenceType
	Weekdays       []time.Weekday // WEEKLY: дни недели правила
	DayOfMonth     int            // MONTHLY: фиксированный день месяца

	StartTime types.TimeString
	EndTime   types.TimeString
	StartDate time.Time
	EndDate   *time.Time // nil = окно по умолчанию от StartDate

	MonthlyAmount float64
	AdvanceAmount float64
	Discount      Discount

	Status    RuleStatus
	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the rule may be materialized
func (r *RecurringRule) IsActive() bool {
	return r.Status == RuleStatusActive
}

// ExpandRuleDates turns the rule into the ascending list of concrete dates
// within its window. Rules without an end date are bounded to
// defaultMonths from the start date. All dates are normalized to midnight
//
// Результат может быть пустым: например, MONTHLY с day=31 в окне без 31-х чисел
func ExpandRuleDates(rule *RecurringRule, defaultMonths int) []time.Time {
	if defaultMonths <= 0 {
		defaultMonths = DefaultRecurrenceMonths
	}

	start := NormalizeDate(rule.StartDate)
	end := start.AddDate(0, defaultMonths, 0)
	if rule.EndDate != nil {
		end = NormalizeDate(*rule.EndDate)
	}

	dates := make([]time.Time, 0)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		switch rule.RecurrenceType {
		case RecurrenceWeekly:
			if weekdayInSet(day.Weekday(), rule.Weekdays) {
				dates = append(dates, day)
			}
		case RecurrenceMonthly:
			if day.Day() == rule.DayOfMonth {
				dates = append(dates, day)
			}
		}
	}

	return dates
}

func weekdayInSet(day time.Weekday, set []time.Weekday) bool {
	for _, d := range set {
		if d == day {
			return true
		}
	}
	return false
}
