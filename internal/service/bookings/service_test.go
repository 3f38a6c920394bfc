package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/bookingslot"
	paymentRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-CourtService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

type stubBookingRepo struct {
	booking *domain.Booking
	err     error
	list    []*domain.Booking
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

func (s *stubBookingRepo) ListByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
	return s.list, nil
}

func (s *stubBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	s.booking.Status = status
	return nil
}

type stubSlotRepo struct {
	booked      []types.TimeString
	updateErr   error
	statusCalls []domain.SlotStatus
	lastExclude *int64
}

func (s *stubSlotRepo) FindBooked(ctx context.Context, courtID int64, date time.Time, slotTimes []types.TimeString, excludeBookingID *int64) ([]types.TimeString, error) {
	s.lastExclude = excludeBookingID
	return s.booked, nil
}

func (s *stubSlotRepo) UpdateStatusByBooking(ctx context.Context, bookingID int64, status domain.SlotStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.statusCalls = append(s.statusCalls, status)
	return nil
}

type stubPaymentRepo struct {
	payment     *domain.Payment
	err         error
	lastTotal   float64
	lastAdvance float64
}

func (s *stubPaymentRepo) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payment, nil
}

func (s *stubPaymentRepo) UpdateAmounts(ctx context.Context, bookingID int64, total, advance float64) error {
	s.lastTotal = total
	s.lastAdvance = advance
	if s.payment != nil {
		s.payment.AdvanceAmount = advance
		s.payment.BalanceAmount = domain.PaymentBalance(total, advance)
		s.payment.Status = domain.DerivePaymentStatus(total, advance)
	}
	return nil
}

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func bookedBooking() *domain.Booking {
	return &domain.Booking{
		ID:          5,
		CourtID:     1,
		BookingDate: time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("10:00"),
		EndTime:     types.TimeString("11:00"),
		SlotCount:   4,
		BaseAmount:  400,
		FinalAmount: 400,
		Status:      domain.BookingStatusBooked,
		Source:      domain.SourceManual,
	}
}

func pendingPayment() *domain.Payment {
	return &domain.Payment{
		ID:          9,
		BookingID:   5,
		TotalAmount: 400,
		Mode:        domain.PaymentModeCash,
		Status:      domain.PaymentStatusPending,
	}
}

func newTestService(b *stubBookingRepo, sl *stubSlotRepo, p *stubPaymentRepo) *Service {
	return NewService(b, sl, p, stubTxManager{}, nopLogger{})
}

func TestGetByID(t *testing.T) {
	svc := newTestService(&stubBookingRepo{booking: bookedBooking()}, &stubSlotRepo{}, &stubPaymentRepo{payment: pendingPayment()})

	resp, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "BOOKED", resp.Status)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, float64(400), resp.Payment.TotalAmount)
}

func TestGetByID_PaymentMissing(t *testing.T) {
	svc := newTestService(&stubBookingRepo{booking: bookedBooking()}, &stubSlotRepo{}, &stubPaymentRepo{err: paymentRepo.ErrPaymentNotFound})

	resp, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, resp.Payment)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&stubBookingRepo{err: bookingRepo.ErrBookingNotFound}, &stubSlotRepo{}, &stubPaymentRepo{})

	_, err := svc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_FreesSlots(t *testing.T) {
	slots := &stubSlotRepo{}
	svc := newTestService(&stubBookingRepo{booking: bookedBooking()}, slots, &stubPaymentRepo{payment: pendingPayment()})

	resp, err := svc.Cancel(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "CANCELLED", resp.Status)
	require.Len(t, slots.statusCalls, 1)
	assert.Equal(t, domain.SlotStatusCancelled, slots.statusCalls[0])
}

func TestCancel_WrongStatus(t *testing.T) {
	booking := bookedBooking()
	booking.Status = domain.BookingStatusCancelled
	svc := newTestService(&stubBookingRepo{booking: booking}, &stubSlotRepo{}, &stubPaymentRepo{})

	_, err := svc.Cancel(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestComplete(t *testing.T) {
	slots := &stubSlotRepo{}
	svc := newTestService(&stubBookingRepo{booking: bookedBooking()}, slots, &stubPaymentRepo{payment: pendingPayment()})

	resp, err := svc.Complete(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", resp.Status)
	require.Len(t, slots.statusCalls, 1)
	assert.Equal(t, domain.SlotStatusCompleted, slots.statusCalls[0])
}

func TestReactivate_Success(t *testing.T) {
	booking := bookedBooking()
	booking.Status = domain.BookingStatusCancelled
	slots := &stubSlotRepo{}
	svc := newTestService(&stubBookingRepo{booking: booking}, slots, &stubPaymentRepo{payment: pendingPayment()})

	resp, err := svc.Reactivate(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "BOOKED", resp.Status)
	require.Len(t, slots.statusCalls, 1)
	assert.Equal(t, domain.SlotStatusBooked, slots.statusCalls[0])

	// Слоты самой брони не считаются конфликтом
	require.NotNil(t, slots.lastExclude)
	assert.Equal(t, int64(5), *slots.lastExclude)
}

func TestReactivate_Conflict(t *testing.T) {
	booking := bookedBooking()
	booking.Status = domain.BookingStatusCancelled
	slots := &stubSlotRepo{booked: []types.TimeString{"10:30", "10:00"}}
	svc := newTestService(&stubBookingRepo{booking: booking}, slots, &stubPaymentRepo{})

	_, err := svc.Reactivate(context.Background(), 5)
	require.ErrorIs(t, err, ErrSlotConflict)

	var conflictErr *SlotConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, []string{"10:00", "10:30"}, conflictErr.Slots)
	assert.Empty(t, slots.statusCalls)
}

func TestReactivate_LostSlotRace(t *testing.T) {
	booking := bookedBooking()
	booking.Status = domain.BookingStatusCompleted
	slots := &stubSlotRepo{updateErr: slotRepo.ErrSlotTaken}
	svc := newTestService(&stubBookingRepo{booking: booking}, slots, &stubPaymentRepo{})

	_, err := svc.Reactivate(context.Background(), 5)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestReactivate_AlreadyBooked(t *testing.T) {
	svc := newTestService(&stubBookingRepo{booking: bookedBooking()}, &stubSlotRepo{}, &stubPaymentRepo{})

	_, err := svc.Reactivate(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCannotReactivate)
}

func TestUpdatePayment(t *testing.T) {
	payments := &stubPaymentRepo{payment: pendingPayment()}
	svc := newTestService(&stubBookingRepo{booking: bookedBooking()}, &stubSlotRepo{}, payments)

	resp, err := svc.UpdatePayment(context.Background(), 5, &models.UpdatePaymentRequest{AdvanceAmount: 100})
	require.NoError(t, err)

	assert.Equal(t, float64(400), payments.lastTotal)
	assert.Equal(t, float64(100), payments.lastAdvance)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, float64(300), resp.Payment.BalanceAmount)
	assert.Equal(t, string(domain.PaymentStatusPartial), resp.Payment.Status)
}

func TestUpdatePayment_AdvanceExceedsTotal(t *testing.T) {
	svc := newTestService(&stubBookingRepo{booking: bookedBooking()}, &stubSlotRepo{}, &stubPaymentRepo{payment: pendingPayment()})

	_, err := svc.UpdatePayment(context.Background(), 5, &models.UpdatePaymentRequest{AdvanceAmount: 500})
	assert.ErrorIs(t, err, ErrAdvanceExceedsTotal)
}

func TestListByCourtAndDate(t *testing.T) {
	svc := newTestService(&stubBookingRepo{list: []*domain.Booking{bookedBooking()}}, &stubSlotRepo{}, &stubPaymentRepo{})

	resp, err := svc.ListByCourtAndDate(context.Background(), 1, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(5), resp.Bookings[0].ID)
}
