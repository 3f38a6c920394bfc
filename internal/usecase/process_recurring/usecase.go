package process_recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/recurring"
	"github.com/m04kA/SMC-CourtService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtService/pkg/ptr"
)

// UseCase use case материализации правила повторения в бронирования
//
// Все даты правила обрабатываются в одной транзакции: удачные даты
// коммитятся вместе. Провал отдельной даты (конфликт слотов, ошибка
// валидации) записывается в отчет и не прерывает цикл; транзакцию
// прерывает только неожиданная ошибка вне этого класса
type UseCase struct {
	ruleRepo       RuleRepository
	bookingCreator BookingCreator
	txManager      TransactionManager
	defaultMonths  int
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ruleRepo RuleRepository,
	bookingCreator BookingCreator,
	txManager TransactionManager,
	defaultMonths int,
	logger Logger,
) *UseCase {
	if defaultMonths <= 0 {
		defaultMonths = domain.DefaultRecurrenceMonths
	}
	return &UseCase{
		ruleRepo:       ruleRepo,
		bookingCreator: bookingCreator,
		txManager:      txManager,
		defaultMonths:  defaultMonths,
		logger:         logger,
	}
}

// Execute выполняет use case материализации правила
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Report, error) {
	if req.RuleID <= 0 {
		return nil, fmt.Errorf("%w: rule_id must be positive", ErrInvalidInput)
	}

	uc.logger.Info("ProcessRecurring: materializing rule id=%d", req.RuleID)

	var report *Report

	run := func(txCtx context.Context) error {
		r, err := uc.processInTx(txCtx, req)
		if err != nil {
			return err
		}
		report = r
		return nil
	}

	// Границами внешней транзакции владеет вызывающий
	var err error
	if dbmetrics.IsInTransaction(ctx) {
		err = run(ctx)
	} else {
		err = uc.txManager.DoSerializable(ctx, run)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ProcessRecurring: rule id=%d done, success=%d, failed=%d",
		req.RuleID, report.Success, len(report.Failures))

	return report, nil
}

func (uc *UseCase) processInTx(ctx context.Context, req *Request) (*Report, error) {
	// 1. Загружаем правило; внутри транзакции строка блокируется,
	// поэтому два процессора одного правила не работают одновременно
	rule, err := uc.ruleRepo.GetByID(ctx, req.RuleID)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			uc.logger.Warn("ProcessRecurring: rule id=%d not found", req.RuleID)
			return nil, ErrRuleNotFound
		}
		uc.logger.Error("ProcessRecurring: failed to get rule id=%d: %v", req.RuleID, err)
		return nil, fmt.Errorf("%w: failed to get rule: %v", ErrInternal, err)
	}
	if !rule.IsActive() {
		uc.logger.Warn("ProcessRecurring: rule id=%d is %s", rule.ID, rule.Status)
		return nil, ErrRuleNotActive
	}

	// 2. Раскрываем правило в конкретные даты
	dates := domain.ExpandRuleDates(rule, uc.defaultMonths)

	report := &Report{
		RuleID:     rule.ID,
		TotalDates: len(dates),
		Failures:   make([]DateFailure, 0),
		BookingIDs: make([]int64, 0, len(dates)),
	}

	// 3. Создаем бронирование на каждую дату независимо. Точка сохранения
	// изолирует провал даты: без неё ошибка вставки (например, 23505 на
	// индексе активных слотов) переводит транзакцию postgres в аварийное
	// состояние и валит все последующие даты
	for i, date := range dates {
		bookingReq := &create_booking.Request{
			CustomerName:    rule.CustomerName,
			CustomerPhone:   rule.CustomerPhone,
			CourtID:         rule.CourtID,
			Date:            date,
			StartTime:       rule.StartTime,
			EndTime:         rule.EndTime,
			Discount:        rule.Discount,
			AdvanceAmount:   rule.AdvanceAmount,
			PaymentMode:     domain.PaymentModeCash,
			Source:          domain.SourceRecurring,
			RecurringRuleID: ptr.Ptr(rule.ID),
			CreatedBy:       req.CreatedBy,
		}

		var resp *create_booking.Response
		err := dbmetrics.WithSavepoint(ctx, fmt.Sprintf("rule_date_%d", i), func(spCtx context.Context) error {
			created, err := uc.bookingCreator.Execute(spCtx, bookingReq)
			if err != nil {
				return err
			}
			resp = created
			return nil
		})
		if err != nil {
			if !isPerDateFailure(err) {
				// Неожиданная ошибка: прерываем всю партию
				uc.logger.Error("ProcessRecurring: rule id=%d date=%s unexpected error: %v",
					rule.ID, date.Format(domain.DateFormat), err)
				return nil, fmt.Errorf("%w: date %s: %v", ErrInternal, date.Format(domain.DateFormat), err)
			}

			uc.logger.Warn("ProcessRecurring: rule id=%d date=%s skipped: %v",
				rule.ID, date.Format(domain.DateFormat), err)
			report.Failures = append(report.Failures, DateFailure{
				Date:   date.Format(domain.DateFormat),
				Reason: failureReason(err),
			})
			continue
		}

		report.Success++
		report.BookingIDs = append(report.BookingIDs, resp.ID)
	}

	return report, nil
}

// isPerDateFailure отличает бизнес-ошибку одной даты от фатальной
// Конфликты и ошибки валидации записываются в отчет, остальное
// прерывает транзакцию всей партии
func isPerDateFailure(err error) bool {
	return errors.Is(err, create_booking.ErrSlotConflict) ||
		errors.Is(err, create_booking.ErrInvalidInput) ||
		errors.Is(err, create_booking.ErrInvalidTimeRange) ||
		errors.Is(err, create_booking.ErrAdvanceExceedsTotal)
}

func failureReason(err error) string {
	var conflictErr *create_booking.SlotConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr.Error()
	}
	return err.Error()
}
