package check_availability

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/court"
)

// UseCase use case проверки доступности диапазона слотов
//
// Проверка только читает и ничего не резервирует: между ответом "свободно"
// и последующим созданием брони слоты может занять кто-то другой
type UseCase struct {
	courtRepo CourtRepository
	slotRepo  SlotRepository
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(courtRepo CourtRepository, slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		courtRepo: courtRepo,
		slotRepo:  slotRepo,
		logger:    logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Корт должен существовать; неактивный корт проверять можно
	if _, err := uc.courtRepo.GetByID(ctx, req.CourtID); err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("CheckAvailability: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 3. Генерируем слоты запрошенного диапазона
	slots, err := domain.GenerateSlots(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CheckAvailability: invalid time range %s-%s: %v", req.StartTime, req.EndTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	// 4. Ищем занятые слоты среди запрошенных
	date := domain.NormalizeDate(req.Date)
	booked, err := uc.slotRepo.FindBooked(ctx, req.CourtID, date, slots, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to find booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to find booked slots: %v", ErrInternal, err)
	}

	conflicts := make([]string, len(booked))
	for i, s := range booked {
		conflicts[i] = s.String()
	}
	sort.Strings(conflicts)

	uc.logger.Info("CheckAvailability: court=%d date=%s %s-%s: %d of %d slots booked",
		req.CourtID, date.Format(domain.DateFormat), req.StartTime, req.EndTime, len(conflicts), len(slots))

	return &Response{
		Available: len(conflicts) == 0,
		SlotCount: len(slots),
		Conflicts: conflicts,
	}, nil
}
