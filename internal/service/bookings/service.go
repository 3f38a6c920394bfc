package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/bookingslot"
	paymentRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-CourtService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtService/pkg/ptr"
)

// Service сервис жизненного цикла бронирований
//
// Создание броней живет в usecase/create_booking; здесь остальные
// переходы статусов: бронь и её слоты всегда меняются как одна единица
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID вместе с платежом
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.GetByBookingID(ctx, id)
	if err != nil {
		if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Error("GetByID: failed to get payment for booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: GetByID - payment repository error: %v", ErrInternal, err)
		}
		payment = nil
	}

	return models.FromDomainBooking(booking, payment), nil
}

// ListByCourtAndDate получает бронирования корта на дату
func (s *Service) ListByCourtAndDate(ctx context.Context, courtID int64, date time.Time) (*models.BookingListResponse, error) {
	if courtID <= 0 {
		return nil, fmt.Errorf("%w: court_id must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByCourtAndDate(ctx, courtID, domain.NormalizeDate(date))
	if err != nil {
		s.logger.Error("ListByCourtAndDate: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: ListByCourtAndDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и освобождает его слоты
// После отмены слоты сразу доступны новым броням: уникальный индекс
// действует только на строки в статусе BOOKED
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, id)
		if err != nil {
			return err
		}
		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d has status %s", id, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, domain.BookingStatusCancelled); err != nil {
			return fmt.Errorf("%w: Cancel - failed to update booking: %v", ErrInternal, err)
		}
		if err := s.slotRepo.UpdateStatusByBooking(txCtx, id, domain.SlotStatusCancelled); err != nil {
			return fmt.Errorf("%w: Cancel - failed to update slots: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%d cancelled", id)
	return s.GetByID(ctx, id)
}

// Complete завершает бронирование вручную, не дожидаясь свипера
func (s *Service) Complete(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Complete: completing booking id=%d", id)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, id)
		if err != nil {
			return err
		}
		if !booking.CanBeCompleted() {
			s.logger.Warn("Complete: booking id=%d has status %s", id, booking.Status)
			return ErrCannotComplete
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, domain.BookingStatusCompleted); err != nil {
			return fmt.Errorf("%w: Complete - failed to update booking: %v", ErrInternal, err)
		}
		if err := s.slotRepo.UpdateStatusByBooking(txCtx, id, domain.SlotStatusCompleted); err != nil {
			return fmt.Errorf("%w: Complete - failed to update slots: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Complete: booking id=%d completed", id)
	return s.GetByID(ctx, id)
}

// Reactivate возвращает отмененное или завершенное бронирование в BOOKED
//
// Слоты за время простоя могли занять другие брони, поэтому доступность
// проверяется заново, без учета слотов самой брони. Проигрыш гонки на
// переводе слотов обратно в BOOKED возвращается тем же классом конфликта
func (s *Service) Reactivate(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Reactivate: reactivating booking id=%d", id)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, id)
		if err != nil {
			return err
		}
		if !booking.CanBeReactivated() {
			s.logger.Warn("Reactivate: booking id=%d has status %s", id, booking.Status)
			return ErrCannotReactivate
		}

		slots, err := domain.GenerateSlots(booking.StartTime, booking.EndTime)
		if err != nil {
			return fmt.Errorf("%w: Reactivate - failed to expand slots: %v", ErrInternal, err)
		}

		conflicts, err := s.slotRepo.FindBooked(txCtx, booking.CourtID, booking.BookingDate, slots, ptr.Ptr(booking.ID))
		if err != nil {
			return fmt.Errorf("%w: Reactivate - availability check failed: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			labels := make([]string, len(conflicts))
			for i, c := range conflicts {
				labels[i] = c.String()
			}
			sort.Strings(labels)
			s.logger.Warn("Reactivate: booking id=%d conflicts with %d slots", id, len(labels))
			return &SlotConflictError{Slots: labels}
		}

		if err := s.slotRepo.UpdateStatusByBooking(txCtx, id, domain.SlotStatusBooked); err != nil {
			if errors.Is(err, slotRepo.ErrSlotTaken) {
				labels := make([]string, len(slots))
				for i, sl := range slots {
					labels[i] = sl.String()
				}
				s.logger.Warn("Reactivate: booking id=%d lost slot race", id)
				return &SlotConflictError{Slots: labels}
			}
			return fmt.Errorf("%w: Reactivate - failed to update slots: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.UpdateStatus(txCtx, id, domain.BookingStatusBooked); err != nil {
			return fmt.Errorf("%w: Reactivate - failed to update booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reactivate: booking id=%d is BOOKED again", id)
	return s.GetByID(ctx, id)
}

// UpdatePayment изменяет внесённый аванс бронирования
// Статус и остаток пересчитываются от полной суммы
func (s *Service) UpdatePayment(ctx context.Context, id int64, req *models.UpdatePaymentRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdatePayment: booking id=%d, advance=%.2f", id, req.AdvanceAmount)

	if req.AdvanceAmount < 0 {
		return nil, fmt.Errorf("%w: advance amount cannot be negative", ErrInvalidInput)
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, id)
		if err != nil {
			return err
		}
		if req.AdvanceAmount > booking.FinalAmount {
			s.logger.Warn("UpdatePayment: advance %.2f exceeds final amount %.2f for booking id=%d",
				req.AdvanceAmount, booking.FinalAmount, id)
			return ErrAdvanceExceedsTotal
		}

		if err := s.paymentRepo.UpdateAmounts(txCtx, id, booking.FinalAmount, req.AdvanceAmount); err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdatePayment - failed to update payment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// getBooking загружает бронирование, транслируя ошибку репозитория
func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}
