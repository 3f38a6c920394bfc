package process_recurring

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/recurring"
	"github.com/m04kA/SMC-CourtService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

type stubRuleRepo struct {
	rule *domain.RecurringRule
	err  error
}

func (s *stubRuleRepo) GetByID(ctx context.Context, id int64) (*domain.RecurringRule, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rule, nil
}

// stubCreator отвечает по датам: для дат из failOn возвращает заданную ошибку
type stubCreator struct {
	failOn   map[string]error
	nextID   int64
	requests []*create_booking.Request
}

func (s *stubCreator) Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	s.requests = append(s.requests, req)
	if err, ok := s.failOn[req.Date.Format(domain.DateFormat)]; ok {
		return nil, err
	}
	s.nextID++
	return &create_booking.Response{ID: s.nextID}, nil
}

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingTx записывает выполненные SQL-команды вместо настоящей транзакции
type recordingTx struct {
	queries []string
}

func (r *recordingTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	r.queries = append(r.queries, query)
	return nil, nil
}

func (r *recordingTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (r *recordingTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (r *recordingTx) Commit() error   { return nil }
func (r *recordingTx) Rollback() error { return nil }

// txCtxManager кладет запись-транзакцию в контекст, как настоящий менеджер
type txCtxManager struct {
	tx *recordingTx
}

func (m txCtxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(dbmetrics.WithTx(ctx, m.tx))
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Понедельники января 2026: 5, 12, 19, 26
func weeklyRule() *domain.RecurringRule {
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	return &domain.RecurringRule{
		ID:             3,
		CustomerName:   "Анна Смирнова",
		CustomerPhone:  "+79001112233",
		CourtID:        1,
		RecurrenceType: domain.RecurrenceWeekly,
		Weekdays:       []time.Weekday{time.Monday},
		StartTime:      types.TimeString("18:00"),
		EndTime:        types.TimeString("19:00"),
		StartDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        &end,
		Discount:       domain.Discount{Type: domain.DiscountNone},
		Status:         domain.RuleStatusActive,
	}
}

func newTestUseCase(rules *stubRuleRepo, creator *stubCreator) *UseCase {
	return NewUseCase(rules, creator, stubTxManager{}, 3, nopLogger{})
}

func TestExecute_AllDatesSucceed(t *testing.T) {
	creator := &stubCreator{}
	uc := newTestUseCase(&stubRuleRepo{rule: weeklyRule()}, creator)

	report, err := uc.Execute(context.Background(), &Request{RuleID: 3, CreatedBy: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.RuleID)
	assert.Equal(t, 4, report.TotalDates)
	assert.Equal(t, 4, report.Success)
	assert.Empty(t, report.Failures)
	assert.Equal(t, []int64{1, 2, 3, 4}, report.BookingIDs)

	// Каждая бронь несёт условия правила и ссылку на него
	require.Len(t, creator.requests, 4)
	for _, req := range creator.requests {
		assert.Equal(t, int64(1), req.CourtID)
		assert.Equal(t, domain.SourceRecurring, req.Source)
		require.NotNil(t, req.RecurringRuleID)
		assert.Equal(t, int64(3), *req.RecurringRuleID)
		assert.Equal(t, int64(7), req.CreatedBy)
	}
}

func TestExecute_ConflictsRecordedAndSkipped(t *testing.T) {
	conflictErr := &create_booking.SlotConflictError{Slots: []string{"18:00", "18:15"}}
	creator := &stubCreator{failOn: map[string]error{
		"2026-01-12": conflictErr,
		"2026-01-26": conflictErr,
	}}
	uc := newTestUseCase(&stubRuleRepo{rule: weeklyRule()}, creator)

	report, err := uc.Execute(context.Background(), &Request{RuleID: 3})
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalDates)
	assert.Equal(t, 2, report.Success)
	require.Len(t, report.Failures, 2)
	assert.Equal(t, "2026-01-12", report.Failures[0].Date)
	assert.Equal(t, "2026-01-26", report.Failures[1].Date)
	assert.Contains(t, report.Failures[0].Reason, "18:00")
	assert.Len(t, report.BookingIDs, 2)

	// Сумма удач и провалов сходится с числом дат
	assert.Equal(t, report.TotalDates, report.Success+len(report.Failures))
}

func TestExecute_MidBatchRaceRolledBackToSavepoint(t *testing.T) {
	// Проигрыш гонки на вставке (уникальный индекс активных слотов) проваливает
	// запрос внутри общей транзакции; без отката к точке сохранения транзакция
	// осталась бы в аварийном состоянии и завалила бы все последующие даты
	conflictErr := &create_booking.SlotConflictError{Slots: []string{"18:00"}}
	creator := &stubCreator{failOn: map[string]error{
		"2026-01-12": conflictErr,
	}}
	tx := &recordingTx{}
	uc := NewUseCase(&stubRuleRepo{rule: weeklyRule()}, creator, txCtxManager{tx: tx}, 3, nopLogger{})

	report, err := uc.Execute(context.Background(), &Request{RuleID: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Success)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "2026-01-12", report.Failures[0].Date)

	var savepoints, releases, rollbacks []string
	for _, q := range tx.queries {
		switch {
		case strings.HasPrefix(q, "ROLLBACK TO SAVEPOINT"):
			rollbacks = append(rollbacks, q)
		case strings.HasPrefix(q, "RELEASE SAVEPOINT"):
			releases = append(releases, q)
		case strings.HasPrefix(q, "SAVEPOINT"):
			savepoints = append(savepoints, q)
		}
	}

	// Каждая дата под своей точкой сохранения: провалившаяся откатывается,
	// удачные освобождаются
	assert.Len(t, savepoints, 4)
	assert.Len(t, releases, 3)
	require.Len(t, rollbacks, 1)
	assert.Equal(t, "ROLLBACK TO SAVEPOINT rule_date_1", rollbacks[0])
}

func TestExecute_UnexpectedErrorAbortsBatch(t *testing.T) {
	creator := &stubCreator{failOn: map[string]error{
		"2026-01-12": errors.New("connection reset"),
	}}
	uc := newTestUseCase(&stubRuleRepo{rule: weeklyRule()}, creator)

	_, err := uc.Execute(context.Background(), &Request{RuleID: 3})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_RuleNotFound(t *testing.T) {
	uc := newTestUseCase(&stubRuleRepo{err: ruleRepo.ErrRuleNotFound}, &stubCreator{})

	_, err := uc.Execute(context.Background(), &Request{RuleID: 99})
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestExecute_PausedRule(t *testing.T) {
	rule := weeklyRule()
	rule.Status = domain.RuleStatusPaused
	uc := newTestUseCase(&stubRuleRepo{rule: rule}, &stubCreator{})

	_, err := uc.Execute(context.Background(), &Request{RuleID: 3})
	assert.ErrorIs(t, err, ErrRuleNotActive)
}

func TestExecute_InvalidRuleID(t *testing.T) {
	uc := newTestUseCase(&stubRuleRepo{rule: weeklyRule()}, &stubCreator{})

	_, err := uc.Execute(context.Background(), &Request{RuleID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
