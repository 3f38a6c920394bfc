package jobs

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований для свипера
type BookingRepository interface {
	ListExpired(ctx context.Context, now time.Time) ([]*domain.Booking, error)
	UpdateStatusByIDs(ctx context.Context, ids []int64, status domain.BookingStatus) error
}

// SlotRepository интерфейс репозитория слотов для свипера
type SlotRepository interface {
	UpdateStatusByBookingIDs(ctx context.Context, bookingIDs []int64, status domain.SlotStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ExpirySweeper фоновый процесс завершения истекших бронирований
//
// По интервалу переводит в COMPLETED все брони в статусе BOOKED, чье
// запланированное окончание уже прошло, вместе с их слотами. Один проход -
// одна транзакция; провал прохода логируется и откатывается, следующий
// интервал повторит работу. Повторный запуск без истекших броней ничего
// не пишет
type ExpirySweeper struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	interval    time.Duration
	logger      Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewExpirySweeper создает новый свипер с заданным интервалом
func NewExpirySweeper(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	interval time.Duration,
	logger Logger,
) *ExpirySweeper {
	return &ExpirySweeper{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		interval:    interval,
		logger:      logger,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start запускает цикл свипера в отдельной горутине
func (s *ExpirySweeper) Start(ctx context.Context) {
	s.logger.Info("ExpirySweeper: started with interval %s", s.interval)

	go func() {
		defer close(s.doneCh)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		// Первый проход сразу: после рестарта сервиса истекшие брони
		// не должны ждать целый интервал
		s.sweep(ctx)

		for {
			select {
			case <-ticker.C:
				s.sweep(ctx)
			case <-s.stopCh:
				s.logger.Info("ExpirySweeper: stopped")
				return
			case <-ctx.Done():
				s.logger.Info("ExpirySweeper: context cancelled")
				return
			}
		}
	}()
}

// Stop останавливает свипер и ждет завершения текущего прохода
func (s *ExpirySweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

// sweep выполняет один проход в отдельной транзакции
func (s *ExpirySweeper) sweep(ctx context.Context) {
	now := time.Now()

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		expired, err := s.bookingRepo.ListExpired(txCtx, now)
		if err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}

		ids := make([]int64, len(expired))
		for i, b := range expired {
			ids[i] = b.ID
		}

		if err := s.bookingRepo.UpdateStatusByIDs(txCtx, ids, domain.BookingStatusCompleted); err != nil {
			return err
		}
		if err := s.slotRepo.UpdateStatusByBookingIDs(txCtx, ids, domain.SlotStatusCompleted); err != nil {
			return err
		}

		s.logger.Info("ExpirySweeper: completed %d expired bookings", len(ids))
		return nil
	})
	if err != nil {
		s.logger.Error("ExpirySweeper: sweep failed: %v", err)
	}
}
