package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/court"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

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

type stubSlotRepo struct {
	booked      []types.TimeString
	lastExclude *int64
	lastSlots   []types.TimeString
}

func (s *stubSlotRepo) FindBooked(ctx context.Context, courtID int64, date time.Time, slotTimes []types.TimeString, excludeBookingID *int64) ([]types.TimeString, error) {
	s.lastSlots = slotTimes
	s.lastExclude = excludeBookingID
	return s.booked, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testDate = time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		CourtID:   1,
		Date:      testDate,
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("11:00"),
	}
}

func TestExecute_Available(t *testing.T) {
	slots := &stubSlotRepo{}
	uc := NewUseCase(&stubCourtRepo{court: &domain.Court{ID: 1, Status: domain.CourtStatusActive}}, slots, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Equal(t, 4, resp.SlotCount)
	assert.Empty(t, resp.Conflicts)
	assert.Len(t, slots.lastSlots, 4)
}

func TestExecute_Conflicts(t *testing.T) {
	slots := &stubSlotRepo{booked: []types.TimeString{"10:30", "10:15"}}
	uc := NewUseCase(&stubCourtRepo{court: &domain.Court{ID: 1}}, slots, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, 4, resp.SlotCount)
	assert.Equal(t, []string{"10:15", "10:30"}, resp.Conflicts)
}

func TestExecute_Repeatable(t *testing.T) {
	// Проверка только читает: повторный вызов даёт тот же ответ
	slots := &stubSlotRepo{booked: []types.TimeString{"10:00"}}
	uc := NewUseCase(&stubCourtRepo{court: &domain.Court{ID: 1}}, slots, nopLogger{})

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_ExcludeBookingID(t *testing.T) {
	slots := &stubSlotRepo{}
	uc := NewUseCase(&stubCourtRepo{court: &domain.Court{ID: 1}}, slots, nopLogger{})

	req := validRequest()
	excludeID := int64(77)
	req.ExcludeBookingID = &excludeID

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, slots.lastExclude)
	assert.Equal(t, int64(77), *slots.lastExclude)
}

func TestExecute_InactiveCourtStillChecked(t *testing.T) {
	court := &domain.Court{ID: 1, Status: domain.CourtStatusInactive}
	uc := NewUseCase(&stubCourtRepo{court: court}, &stubSlotRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_CourtNotFound(t *testing.T) {
	uc := NewUseCase(&stubCourtRepo{err: courtRepo.ErrCourtNotFound}, &stubSlotRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_InvalidTimeRange(t *testing.T) {
	uc := NewUseCase(&stubCourtRepo{court: &domain.Court{ID: 1}}, &stubSlotRepo{}, nopLogger{})

	req := validRequest()
	req.StartTime = types.TimeString("11:00")
	req.EndTime = types.TimeString("11:00")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&stubCourtRepo{court: &domain.Court{ID: 1}}, &stubSlotRepo{}, nopLogger{})

	req := validRequest()
	req.CourtID = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
