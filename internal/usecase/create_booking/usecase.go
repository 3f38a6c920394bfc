package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/bookingslot"
	courtRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/court"
	"github.com/m04kA/SMC-CourtService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// UseCase use case создания одиночного бронирования
//
// Центральная операция, сохраняющая инвариант занятости слотов:
// бронирование, его слоты и платёж создаются одной атомарной единицей.
// Standalone-вызов оборачивается в собственную сериализуемую транзакцию;
// если в контексте уже есть транзакция (пакетная генерация по правилу),
// usecase присоединяется к ней и не трогает её границы
type UseCase struct {
	courtRepo   CourtRepository
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	paymentRepo PaymentRepository
	settings    SettingsProvider
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	courtRepo CourtRepository,
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	paymentRepo PaymentRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		courtRepo:   courtRepo,
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		paymentRepo: paymentRepo,
		settings:    settings,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: court=%d, date=%s, time=%s-%s, source=%s",
		req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Source)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	run := func(txCtx context.Context) error {
		created, err := uc.createInTx(txCtx, req)
		if err != nil {
			return err
		}
		result = created
		return nil
	}

	// Присоединяемся к внешней транзакции, если она есть; её границами
	// владеет вызывающий (конвенция и txmanager'а, и recurring processor'а)
	var err error
	if dbmetrics.IsInTransaction(ctx) {
		err = run(ctx)
	} else {
		err = uc.txManager.DoSerializable(ctx, run)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (final=%0.f)",
		result.ID, result.FinalAmount)

	return result, nil
}

// createInTx выполняет все шаги создания внутри транзакции вызывающего
func (uc *UseCase) createInTx(ctx context.Context, req *Request) (*Response, error) {
	// 2. Нормализуем дату: для слотов значима только календарная дата
	bookingDate := domain.NormalizeDate(req.Date)

	// 3. Загружаем корт
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("CreateBooking: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateBooking: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	if !court.IsActive() {
		uc.logger.Warn("CreateBooking: court id=%d is not active", req.CourtID)
		return nil, ErrCourtInactive
	}

	// 4. Генерируем слоты запрошенного диапазона
	slots, err := domain.GenerateSlots(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid time range %s-%s: %v", req.StartTime, req.EndTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	// 5. Предварительная проверка занятости (для внятного ответа клиенту;
	// корректность обеспечивает уникальный индекс активных слотов)
	if !req.SkipAvailabilityCheck {
		conflicts, err := uc.slotRepo.FindBooked(ctx, court.ID, bookingDate, slots, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: %d of %d requested slots already booked", len(conflicts), len(slots))
			return nil, newSlotConflictError(conflicts)
		}

		// Подчищаем неактивные строки слотов на тех же ключах.
		// Ошибка не фатальна: уникальный индекс действует только на BOOKED.
		// Точка сохранения не дает провалу запроса перевести транзакцию
		// в аварийное состояние перед вставками ниже
		err = dbmetrics.WithSavepoint(ctx, "stale_slots", func(spCtx context.Context) error {
			return uc.slotRepo.DeleteStale(spCtx, court.ID, bookingDate, slots)
		})
		if err != nil {
			uc.logger.Warn("CreateBooking: failed to clean up stale slot rows: %v", err)
		}
	}

	// 6. Считаем стоимость: базовая сумма по тарифу корта, затем скидка
	weekendDays := uc.weekendDays(ctx)
	baseAmount := domain.CalculatePrice(court, len(slots), bookingDate, weekendDays)
	finalAmount := domain.ApplyDiscount(baseAmount, req.Discount)

	// 7. Аванс: полная оплата по флагу, аванс больше итога - ошибка
	advance := req.AdvanceAmount
	if req.MarkPaid {
		advance = finalAmount
	}
	if advance > finalAmount {
		uc.logger.Warn("CreateBooking: advance %.2f exceeds final amount %.2f", advance, finalAmount)
		return nil, ErrAdvanceExceedsTotal
	}

	// 8. Создаем бронирование, слоты и платёж как одну единицу
	booking := &domain.Booking{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		SportType:       court.SportType,
		CourtID:         court.ID,
		BookingDate:     bookingDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		SlotCount:       len(slots),
		BaseAmount:      baseAmount,
		Discount:        req.Discount,
		FinalAmount:     finalAmount,
		Status:          domain.BookingStatusBooked,
		Source:          req.Source,
		RecurringRuleID: req.RecurringRuleID,
		CreatedBy:       req.CreatedBy,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	slotRows := make([]*domain.BookingSlot, len(slots))
	for i, slotTime := range slots {
		slotRows[i] = &domain.BookingSlot{
			CourtID:     court.ID,
			BookingID:   created.ID,
			BookingDate: bookingDate,
			SlotTime:    slotTime,
			Status:      domain.SlotStatusBooked,
		}
	}

	if err := uc.slotRepo.CreateBatch(ctx, slotRows); err != nil {
		// Проигрыш гонки: кто-то занял слот между проверкой и вставкой.
		// Для вызывающего это тот же класс ошибки, что и провал проверки
		if errors.Is(err, slotRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: lost slot race for court=%d date=%s",
				court.ID, bookingDate.Format(domain.DateFormat))
			return nil, newSlotConflictError(slots)
		}
		uc.logger.Error("CreateBooking: failed to create slots: %v", err)
		return nil, fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
	}

	paymentRow := &domain.Payment{
		BookingID:     created.ID,
		TotalAmount:   finalAmount,
		AdvanceAmount: advance,
		BalanceAmount: domain.PaymentBalance(finalAmount, advance),
		Mode:          req.PaymentMode,
		Status:        domain.DerivePaymentStatus(finalAmount, advance),
	}

	paymentCreated, err := uc.paymentRepo.Create(ctx, paymentRow)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create payment: %v", err)
		return nil, fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
	}

	return buildResponse(created, paymentCreated), nil
}

// weekendDays возвращает набор выходных дней из настроек
// При недоступности настроек используется дефолтный набор
func (uc *UseCase) weekendDays(ctx context.Context) []time.Weekday {
	s, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to load settings, using default weekend days: %v", err)
		return domain.DefaultWeekendDays
	}
	return s.WeekendDays
}

func newSlotConflictError(slots []types.TimeString) *SlotConflictError {
	labels := make([]string, len(slots))
	for i, s := range slots {
		labels[i] = s.String()
	}
	sort.Strings(labels)
	return &SlotConflictError{Slots: labels}
}
