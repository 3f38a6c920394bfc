package recurring

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с правилами повторяющихся бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var ruleColumns = []string{
	"id",
	"customer_name",
	"customer_phone",
	"court_id",
	"recurrence_type",
	"weekdays",
	"day_of_month",
	"start_time",
	"end_time",
	"start_date",
	"end_date",
	"monthly_amount",
	"advance_amount",
	"discount_type",
	"discount_value",
	"status",
	"created_by",
	"created_at",
	"updated_at",
}

// Create создает новое правило повторяющегося бронирования
func (r *Repository) Create(ctx context.Context, rule *domain.RecurringRule) (*domain.RecurringRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("recurring_rules").
		Columns(
			"customer_name",
			"customer_phone",
			"court_id",
			"recurrence_type",
			"weekdays",
			"day_of_month",
			"start_time",
			"end_time",
			"start_date",
			"end_date",
			"monthly_amount",
			"advance_amount",
			"discount_type",
			"discount_value",
			"status",
			"created_by",
		).
		Values(
			rule.CustomerName,
			rule.CustomerPhone,
			rule.CourtID,
			rule.RecurrenceType,
			pq.Array(weekdaysToInts(rule.Weekdays)),
			rule.DayOfMonth,
			rule.StartTime,
			rule.EndTime,
			rule.StartDate,
			rule.EndDate,
			rule.MonthlyAmount,
			rule.AdvanceAmount,
			rule.Discount.Type,
			rule.Discount.Value,
			rule.Status,
			rule.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает правило по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RecurringRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("recurring_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// List получает все правила, опционально фильтруя по статусу
func (r *Repository) List(ctx context.Context, status *domain.RuleStatus) ([]*domain.RecurringRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("recurring_rules").
		OrderBy("id ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.RecurringRule, 0)
	for rows.Next() {
		rule, err := scanRuleRows(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// UpdateStatus обновляет статус правила (активация/пауза)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.RuleStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("recurring_rules").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// Delete удаляет правило
// Сгенерированные бронирования не трогаются: за их судьбу отвечает сервисный слой
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("recurring_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row *sql.Row) (*domain.RecurringRule, error) {
	return scanRuleFrom(row)
}

func scanRuleRows(rows *sql.Rows) (*domain.RecurringRule, error) {
	return scanRuleFrom(rows)
}

func scanRuleFrom(s scanner) (*domain.RecurringRule, error) {
	var rule domain.RecurringRule
	var weekdays pq.Int64Array
	var dayOfMonth sql.NullInt64
	var endDate sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := s.Scan(
		&rule.ID,
		&rule.CustomerName,
		&rule.CustomerPhone,
		&rule.CourtID,
		&rule.RecurrenceType,
		&weekdays,
		&dayOfMonth,
		&rule.StartTime,
		&rule.EndTime,
		&rule.StartDate,
		&endDate,
		&rule.MonthlyAmount,
		&rule.AdvanceAmount,
		&rule.Discount.Type,
		&rule.Discount.Value,
		&rule.Status,
		&rule.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Weekdays = intsToWeekdays(weekdays)
	if dayOfMonth.Valid {
		rule.DayOfMonth = int(dayOfMonth.Int64)
	}
	if endDate.Valid {
		rule.EndDate = &endDate.Time
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func weekdaysToInts(days []time.Weekday) []int64 {
	ints := make([]int64, len(days))
	for i, d := range days {
		ints[i] = int64(d)
	}
	return ints
}

func intsToWeekdays(ints []int64) []time.Weekday {
	if len(ints) == 0 {
		return nil
	}
	days := make([]time.Weekday, len(ints))
	for i, v := range ints {
		days[i] = time.Weekday(v)
	}
	return days
}
