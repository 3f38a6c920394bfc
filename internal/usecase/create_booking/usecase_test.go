package create_booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/bookingslot"
	courtRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/court"
	"github.com/m04kA/SMC-CourtService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Стабы репозиториев

type stubCourtRepo struct {
	court *domain.Court
	err   error
}

func (s *stubCourtRepo) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.court, nil
}

type stubBookingRepo struct {
	created *domain.Booking
	nextID  int64
}

func (s *stubBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = s.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	s.created = b
	return b, nil
}

type stubSlotRepo struct {
	booked      []types.TimeString
	findErr     error
	batchErr    error
	deleteErr   error
	createdRows []*domain.BookingSlot
	findCalls   int
}

func (s *stubSlotRepo) FindBooked(ctx context.Context, courtID int64, date time.Time, slotTimes []types.TimeString, excludeBookingID *int64) ([]types.TimeString, error) {
	s.findCalls++
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.booked, nil
}

func (s *stubSlotRepo) CreateBatch(ctx context.Context, slots []*domain.BookingSlot) error {
	if s.batchErr != nil {
		return s.batchErr
	}
	s.createdRows = slots
	return nil
}

func (s *stubSlotRepo) DeleteStale(ctx context.Context, courtID int64, date time.Time, slotTimes []types.TimeString) error {
	return s.deleteErr
}

type stubPaymentRepo struct {
	created *domain.Payment
}

func (s *stubPaymentRepo) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	p.ID = 10
	s.created = p
	return p, nil
}

type stubSettings struct{}

func (s *stubSettings) Get(ctx context.Context) (*domain.Settings, error) {
	return domain.DefaultSettings(), nil
}

type stubTxManager struct {
	calls int
}

func (s *stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
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

// Среда 2026-01-07
var testDate = time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)

func activeCourt() *domain.Court {
	return &domain.Court{
		ID:          1,
		Name:        "Корт 1",
		SportType:   domain.SportBadminton,
		WeekdayRate: 400,
		WeekendRate: 600,
		Status:      domain.CourtStatusActive,
	}
}

func validRequest() *Request {
	return &Request{
		CustomerName:  "Иван Петров",
		CustomerPhone: "+79001234567",
		CourtID:       1,
		Date:          testDate,
		StartTime:     types.TimeString("10:00"),
		EndTime:       types.TimeString("11:00"),
		Discount:      domain.Discount{Type: domain.DiscountNone},
		PaymentMode:   domain.PaymentModeCash,
		Source:        domain.SourceManual,
		CreatedBy:     7,
	}
}

func newTestUseCase(courts *stubCourtRepo, bookingsRepo *stubBookingRepo, slots *stubSlotRepo, payments *stubPaymentRepo, tx *stubTxManager) *UseCase {
	return NewUseCase(courts, bookingsRepo, slots, payments, &stubSettings{}, tx, nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	slots := &stubSlotRepo{}
	bookingsRepo := &stubBookingRepo{nextID: 42}
	payments := &stubPaymentRepo{}
	tx := &stubTxManager{}

	uc := newTestUseCase(&stubCourtRepo{court: activeCourt()}, bookingsRepo, slots, payments, tx)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 4, resp.SlotCount)
	assert.Equal(t, float64(400), resp.BaseAmount)
	assert.Equal(t, float64(400), resp.FinalAmount)
	assert.Equal(t, string(domain.BookingStatusBooked), resp.Status)
	assert.Equal(t, string(domain.PaymentStatusPending), resp.PaymentStatus)
	assert.Equal(t, 1, tx.calls)

	// Бронь, слоты и платёж созданы как одна единица
	require.Len(t, slots.createdRows, 4)
	for _, row := range slots.createdRows {
		assert.Equal(t, int64(42), row.BookingID)
		assert.Equal(t, domain.SlotStatusBooked, row.Status)
	}
	require.NotNil(t, payments.created)
	assert.Equal(t, int64(42), payments.created.BookingID)
}

func TestExecute_FiftyPercentDiscount(t *testing.T) {
	uc := newTestUseCase(&stubCourtRepo{court: activeCourt()}, &stubBookingRepo{nextID: 1}, &stubSlotRepo{}, &stubPaymentRepo{}, &stubTxManager{})

	req := validRequest()
	req.Discount = domain.Discount{Type: domain.DiscountPercent, Value: 50}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, float64(400), resp.BaseAmount)
	assert.Equal(t, float64(200), resp.FinalAmount)
}

func TestExecute_PartialAdvance(t *testing.T) {
	uc := newTestUseCase(&stubCourtRepo{court: activeCourt()}, &stubBookingRepo{nextID: 1}, &stubSlotRepo{}, &stubPaymentRepo{}, &stubTxManager{})

	req := validRequest()
	req.AdvanceAmount = 100

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, float64(100), resp.AdvanceAmount)
	assert.Equal(t, float64(300), resp.BalanceAmount)
	assert.Equal(t, string(domain.PaymentStatusPartial), resp.PaymentStatus)
}

func TestExecute_MarkPaid(t *testing.T) {
	uc := newTestUseCase(&stubCourtRepo{court: activeCourt()}, &stubBookingRepo{nextID: 1}, &stubSlotRepo{}, &stubPaymentRepo{}, &stubTxManager{})

	req := validRequest()
	req.MarkPaid = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, resp.FinalAmount, resp.AdvanceAmount)
	assert.Equal(t, float64(0), resp.BalanceAmount)
	assert.Equal(t, string(domain.PaymentStatusPaid), resp.PaymentStatus)
}

func TestExecute_AdvanceExceedsTotal(t *testing.T) {
	uc := newTestUseCase(&stubCourtRepo{court: activeCourt()}, &stubBookingRepo{nextID: 1}, &stubSlotRepo{}, &stubPaymentRepo{}, &stubTxManager{})

	req := validRequest()
	req.AdvanceAmount = 1000

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAdvanceExceedsTotal)
}

func TestExecute_SlotConflict(t *testing.T) {
	slots := &stubSlotRepo{booked: []types.TimeString{"10:15", "10:30"}}
	uc := newTestUseCase(&stubCourtRepo{court: activeCourt()}, &stubBookingRepo{nextID: 1}, slots, &stubPaymentRepo{}, &stubTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotConflict)

	var conflictErr *SlotConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, []string{"10:15", "10:30"}, conflictErr.Slots)
}

func TestExecute_LostInsertRace(t *testing.T) {
	// Предварительная проверка чистая, но вставка проигрывает гонку
	slots := &stubSlotRepo{batchErr: slotRepo.ErrSlotTaken}
	uc := newTestUseCase(&stubCourtRepo{court: activeCourt()}, &stubBookingRepo{nextID: 1}, slots, &stubPaymentRepo{}, &stubTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_CourtNotFound(t *testing.T) {
	uc := newTestUseCase(&stubCourtRepo{err: courtRepo.ErrCourtNotFound}, &stubBookingRepo{nextID: 1}, &stubSlotRepo{}, &stubPaymentRepo{}, &stubTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_CourtInactive(t *testing.T) {
	court := activeCourt()
	court.Status = domain.CourtStatusInactive
	uc := newTestUseCase(&stubCourtRepo{court: court}, &stubBookingRepo{nextID: 1}, &stubSlotRepo{}, &stubPaymentRepo{}, &stubTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCourtInactive)
}

func TestExecute_InvalidTimeRange(t *testing.T) {
	uc := newTestUseCase(&stubCourtRepo{court: activeCourt()}, &stubBookingRepo{nextID: 1}, &stubSlotRepo{}, &stubPaymentRepo{}, &stubTxManager{})

	req := validRequest()
	req.StartTime = types.TimeString("11:00")
	req.EndTime = types.TimeString("10:00")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&stubCourtRepo{court: activeCourt()}, &stubBookingRepo{nextID: 1}, &stubSlotRepo{}, &stubPaymentRepo{}, &stubTxManager{})

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "empty customer name", mutate: func(r *Request) { r.CustomerName = "" }},
		{name: "negative advance", mutate: func(r *Request) { r.AdvanceAmount = -1 }},
		{name: "unknown payment mode", mutate: func(r *Request) { r.PaymentMode = "BARTER" }},
		{name: "recurring without rule", mutate: func(r *Request) { r.Source = domain.SourceRecurring }},
		{name: "percent discount over limit", mutate: func(r *Request) {
			r.Discount = domain.Discount{Type: domain.DiscountPercent, Value: 150}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_StaleCleanupFailureIsolated(t *testing.T) {
	// Провал зачистки неактивных строк не фатален, но провалившийся запрос
	// перевел бы транзакцию postgres в аварийное состояние; точка сохранения
	// откатывает только его, и вставки ниже проходят
	slots := &stubSlotRepo{deleteErr: errors.New("deadlock detected")}
	tx := &recordingTx{}
	uc := NewUseCase(&stubCourtRepo{court: activeCourt()}, &stubBookingRepo{nextID: 1}, slots, &stubPaymentRepo{}, &stubSettings{}, txCtxManager{tx: tx}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	require.Len(t, slots.createdRows, 4)

	assert.Contains(t, tx.queries, "SAVEPOINT stale_slots")
	assert.Contains(t, tx.queries, "ROLLBACK TO SAVEPOINT stale_slots")
	assert.NotContains(t, tx.queries, "RELEASE SAVEPOINT stale_slots")
}

func TestExecute_SkipAvailabilityCheck(t *testing.T) {
	slots := &stubSlotRepo{booked: []types.TimeString{"10:00"}}
	uc := newTestUseCase(&stubCourtRepo{court: activeCourt()}, &stubBookingRepo{nextID: 1}, slots, &stubPaymentRepo{}, &stubTxManager{})

	req := validRequest()
	req.SkipAvailabilityCheck = true

	// Проверка пропущена: findBooked не вызывался, решает индекс на вставке
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, slots.findCalls)
}
