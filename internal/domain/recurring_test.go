package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtService/pkg/types"
)

func weeklyRule(start time.Time, end *time.Time, days ...time.Weekday) *RecurringRule {
	return &RecurringRule{
		ID:             1,
		CourtID:        1,
		RecurrenceType: RecurrenceWeekly,
		Weekdays:       days,
		StartTime:      types.TimeString("19:00"),
		EndTime:        types.TimeString("20:00"),
		StartDate:      start,
		EndDate:        end,
		Status:         RuleStatusActive,
	}
}

func TestExpandRuleDates_WeeklyWithEndDate(t *testing.T) {
	// Две недели: 2026-01-05 (понедельник) .. 2026-01-18 (воскресенье)
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC)

	dates := ExpandRuleDates(weeklyRule(start, &end, time.Monday, time.Thursday), 3)

	require.Len(t, dates, 4)
	assert.Equal(t, "2026-01-05", dates[0].Format(DateFormat))
	assert.Equal(t, "2026-01-08", dates[1].Format(DateFormat))
	assert.Equal(t, "2026-01-12", dates[2].Format(DateFormat))
	assert.Equal(t, "2026-01-15", dates[3].Format(DateFormat))
}

func TestExpandRuleDates_EndDateInclusive(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC) // тоже понедельник

	dates := ExpandRuleDates(weeklyRule(start, &end, time.Monday), 3)

	require.Len(t, dates, 2)
	assert.Equal(t, "2026-01-12", dates[1].Format(DateFormat))
}

func TestExpandRuleDates_DefaultWindow(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	dates := ExpandRuleDates(weeklyRule(start, nil, time.Monday), 3)

	require.NotEmpty(t, dates)
	// Окно по умолчанию: start + 3 месяца включительно
	last := dates[len(dates)-1]
	assert.False(t, last.After(start.AddDate(0, 3, 0)))
	// 2026-01-05 + 3 месяца = 2026-04-05; понедельники: 13 штук
	assert.Len(t, dates, 13)
}

func TestExpandRuleDates_Monthly(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)

	rule := &RecurringRule{
		RecurrenceType: RecurrenceMonthly,
		DayOfMonth:     15,
		StartDate:      start,
		EndDate:        &end,
	}

	dates := ExpandRuleDates(rule, 3)

	require.Len(t, dates, 4)
	for _, d := range dates {
		assert.Equal(t, 15, d.Day())
	}
}

func TestExpandRuleDates_MonthlyDayAbsentFromWindow(t *testing.T) {
	// Февраль 2026 без 31-го числа, окно только внутри февраля
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	rule := &RecurringRule{
		RecurrenceType: RecurrenceMonthly,
		DayOfMonth:     31,
		StartDate:      start,
		EndDate:        &end,
	}

	dates := ExpandRuleDates(rule, 3)
	assert.Empty(t, dates)
}

func TestExpandRuleDates_Ascending(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	dates := ExpandRuleDates(weeklyRule(start, &end, time.Monday, time.Wednesday, time.Friday), 3)

	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i].After(dates[i-1]))
	}
}

func TestExpandRuleDates_DatesNormalized(t *testing.T) {
	start := time.Date(2026, 1, 5, 14, 30, 45, 0, time.UTC)
	end := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)

	dates := ExpandRuleDates(weeklyRule(start, &end, time.Monday), 3)

	require.NotEmpty(t, dates)
	for _, d := range dates {
		assert.Equal(t, 0, d.Hour())
		assert.Equal(t, 0, d.Minute())
	}
}
