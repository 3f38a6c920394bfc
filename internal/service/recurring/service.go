package recurring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/court"
	ruleRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/recurring"
	"github.com/m04kA/SMC-CourtService/internal/service/recurring/models"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Service сервис для работы с правилами повторяющихся бронирований
//
// Правило - шаблон, а не бронь: материализацией занимается
// usecase/process_recurring. Удаление правила убирает и будущие
// сгенерированные им брони, прошедшие остаются как история
type Service struct {
	ruleRepo    RuleRepository
	courtRepo   CourtRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(
	ruleRepo RuleRepository,
	courtRepo CourtRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:    ruleRepo,
		courtRepo:   courtRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает новое правило повторения
func (s *Service) Create(ctx context.Context, req *models.CreateRuleRequest, createdBy int64) (*models.RuleResponse, error) {
	s.logger.Info("Create: creating %s rule for court=%d", req.RecurrenceType, req.CourtID)

	rule, err := toDomainRule(req, createdBy)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	court, err := s.courtRepo.GetByID(ctx, rule.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("Create: court id=%d not found", rule.CourtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("Create: failed to get court id=%d: %v", rule.CourtID, err)
		return nil, fmt.Errorf("%w: Create - failed to get court: %v", ErrInternal, err)
	}
	if !court.IsActive() {
		s.logger.Warn("Create: court id=%d is not active", rule.CourtID)
		return nil, ErrCourtInactive
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: rule id=%d created", created.ID)
	return models.FromDomainRule(created), nil
}

// GetByID получает правило по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RuleResponse, error) {
	rule, err := s.getRule(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainRule(rule), nil
}

// List получает список правил, опционально фильтруя по статусу
func (s *Service) List(ctx context.Context, status *string) (*models.RuleListResponse, error) {
	var domainStatus *domain.RuleStatus
	if status != nil {
		st := domain.RuleStatus(strings.ToUpper(*status))
		if st != domain.RuleStatusActive && st != domain.RuleStatusPaused {
			s.logger.Warn("List: invalid status filter %q", *status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &st
	}

	rules, err := s.ruleRepo.List(ctx, domainStatus)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRuleList(rules), nil
}

// UpdateStatus переводит правило между ACTIVE и PAUSED
// Пауза останавливает будущую материализацию, уже созданные брони не трогает
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.RuleResponse, error) {
	st := domain.RuleStatus(strings.ToUpper(req.Status))
	if st != domain.RuleStatusActive && st != domain.RuleStatusPaused {
		s.logger.Warn("UpdateStatus: invalid status %q for rule id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.ruleRepo.UpdateStatus(ctx, id, st); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("UpdateStatus: rule id=%d not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("UpdateStatus: repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: rule id=%d is now %s", id, st)
	return s.GetByID(ctx, id)
}

// Delete удаляет правило вместе с его будущими бронированиями
// Будущие - начиная с сегодняшней даты и в статусе BOOKED; прошедшие
// и отмененные остаются. Слоты уходят каскадом по внешнему ключу
func (s *Service) Delete(ctx context.Context, id int64) (*models.DeleteRuleResponse, error) {
	s.logger.Info("Delete: deleting rule id=%d", id)

	var removed int64

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.getRule(txCtx, id); err != nil {
			return err
		}

		today := domain.NormalizeDate(time.Now())
		n, err := s.bookingRepo.DeleteFutureByRule(txCtx, id, today)
		if err != nil {
			return fmt.Errorf("%w: Delete - failed to remove future bookings: %v", ErrInternal, err)
		}
		removed = n

		if err := s.ruleRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Delete: rule id=%d deleted, %d future bookings removed", id, removed)
	return &models.DeleteRuleResponse{RuleID: id, RemovedBookings: removed}, nil
}

// getRule загружает правило, транслируя ошибку репозитория
func (s *Service) getRule(ctx context.Context, id int64) (*domain.RecurringRule, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: rule id must be positive", ErrInvalidInput)
	}

	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("rule id=%d not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("failed to get rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return rule, nil
}

// toDomainRule валидирует запрос и собирает domain правило
func toDomainRule(req *models.CreateRuleRequest, createdBy int64) (*domain.RecurringRule, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" || len(name) > domain.MaxCustomerNameLength {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	phone := strings.TrimSpace(req.CustomerPhone)
	if phone == "" || len(phone) > domain.MaxCustomerPhoneLength {
		return nil, fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}
	if req.CourtID <= 0 {
		return nil, fmt.Errorf("%w: court_id must be positive", ErrInvalidInput)
	}

	recurrence := domain.RecurrenceType(strings.ToUpper(req.RecurrenceType))
	var weekdays []time.Weekday
	switch recurrence {
	case domain.RecurrenceWeekly:
		if len(req.Weekdays) == 0 {
			return nil, fmt.Errorf("%w: weekly rule requires weekdays", ErrInvalidInput)
		}
		weekdays = make([]time.Weekday, 0, len(req.Weekdays))
		for _, d := range req.Weekdays {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("%w: weekday must be in 0..6", ErrInvalidInput)
			}
			weekdays = append(weekdays, time.Weekday(d))
		}
	case domain.RecurrenceMonthly:
		if req.DayOfMonth < 1 || req.DayOfMonth > 31 {
			return nil, fmt.Errorf("%w: day_of_month must be in 1..31", ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported recurrence type %q", ErrInvalidInput, req.RecurrenceType)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time: %v", ErrInvalidInput, err)
	}
	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end_time: %v", ErrInvalidInput, err)
	}
	if !startTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: start_time must be before end_time", ErrInvalidInput)
	}

	startDate, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date: %v", ErrInvalidInput, err)
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date: %v", ErrInvalidInput, err)
		}
		if parsed.Before(startDate) {
			return nil, fmt.Errorf("%w: end_date is before start_date", ErrInvalidInput)
		}
		endDate = &parsed
	}

	if req.MonthlyAmount < 0 || req.AdvanceAmount < 0 {
		return nil, fmt.Errorf("%w: amounts cannot be negative", ErrInvalidInput)
	}

	discount := domain.Discount{Type: domain.DiscountNone}
	if req.DiscountType != "" {
		dt := domain.DiscountType(strings.ToUpper(req.DiscountType))
		switch dt {
		case domain.DiscountNone:
		case domain.DiscountPercent:
			if req.DiscountValue < 0 || req.DiscountValue > domain.MaxPercentDiscount {
				return nil, fmt.Errorf("%w: percent discount must be in 0..%d", ErrInvalidInput, domain.MaxPercentDiscount)
			}
		case domain.DiscountFlat:
			if req.DiscountValue < 0 {
				return nil, fmt.Errorf("%w: flat discount cannot be negative", ErrInvalidInput)
			}
		default:
			return nil, fmt.Errorf("%w: unsupported discount type %q", ErrInvalidInput, req.DiscountType)
		}
		discount = domain.Discount{Type: dt, Value: req.DiscountValue}
	}

	return &domain.RecurringRule{
		CustomerName:   name,
		CustomerPhone:  phone,
		CourtID:        req.CourtID,
		RecurrenceType: recurrence,
		Weekdays:       weekdays,
		DayOfMonth:     req.DayOfMonth,
		StartTime:      startTime,
		EndTime:        endTime,
		StartDate:      domain.NormalizeDate(startDate),
		EndDate:        endDate,
		MonthlyAmount:  req.MonthlyAmount,
		AdvanceAmount:  req.AdvanceAmount,
		Discount:       discount,
		Status:         domain.RuleStatusActive,
		CreatedBy:      createdBy,
	}, nil
}
