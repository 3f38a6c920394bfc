package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

type stubBookingRepo struct {
	mu       sync.Mutex
	expired  []*domain.Booking
	listErr  error
	updated  [][]int64
	statuses []domain.BookingStatus
}

func (s *stubBookingRepo) ListExpired(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.expired, nil
}

func (s *stubBookingRepo) UpdateStatusByIDs(ctx context.Context, ids []int64, status domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated = append(s.updated, ids)
	s.statuses = append(s.statuses, status)
	return nil
}

type stubSlotRepo struct {
	mu       sync.Mutex
	updated  [][]int64
	statuses []domain.SlotStatus
}

func (s *stubSlotRepo) UpdateStatusByBookingIDs(ctx context.Context, bookingIDs []int64, status domain.SlotStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated = append(s.updated, bookingIDs)
	s.statuses = append(s.statuses, status)
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

func TestSweep_CompletesExpiredBookings(t *testing.T) {
	bookings := &stubBookingRepo{expired: []*domain.Booking{
		{ID: 11, Status: domain.BookingStatusBooked},
		{ID: 12, Status: domain.BookingStatusBooked},
	}}
	slots := &stubSlotRepo{}

	s := NewExpirySweeper(bookings, slots, stubTxManager{}, time.Minute, nopLogger{})
	s.sweep(context.Background())

	require.Len(t, bookings.updated, 1)
	assert.Equal(t, []int64{11, 12}, bookings.updated[0])
	assert.Equal(t, domain.BookingStatusCompleted, bookings.statuses[0])

	require.Len(t, slots.updated, 1)
	assert.Equal(t, []int64{11, 12}, slots.updated[0])
	assert.Equal(t, domain.SlotStatusCompleted, slots.statuses[0])
}

func TestSweep_NothingExpired(t *testing.T) {
	bookings := &stubBookingRepo{}
	slots := &stubSlotRepo{}

	s := NewExpirySweeper(bookings, slots, stubTxManager{}, time.Minute, nopLogger{})
	s.sweep(context.Background())
	s.sweep(context.Background())

	// Пустой проход ничего не пишет, повтор безопасен
	assert.Empty(t, bookings.updated)
	assert.Empty(t, slots.updated)
}

func TestSweep_ListFailureRollsBack(t *testing.T) {
	bookings := &stubBookingRepo{listErr: errors.New("connection reset")}
	slots := &stubSlotRepo{}

	s := NewExpirySweeper(bookings, slots, stubTxManager{}, time.Minute, nopLogger{})
	s.sweep(context.Background())

	assert.Empty(t, bookings.updated)
	assert.Empty(t, slots.updated)
}

func TestStartStop(t *testing.T) {
	bookings := &stubBookingRepo{expired: []*domain.Booking{{ID: 1}}}
	slots := &stubSlotRepo{}

	s := NewExpirySweeper(bookings, slots, stubTxManager{}, 10*time.Millisecond, nopLogger{})
	s.Start(context.Background())
	time.Sleep(35 * time.Millisecond)
	s.Stop()

	// Первый проход выполняется сразу, дальше по тикеру
	bookings.mu.Lock()
	passes := len(bookings.updated)
	bookings.mu.Unlock()
	assert.GreaterOrEqual(t, passes, 2)
}
