package courts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/court"
	"github.com/m04kA/SMC-CourtService/internal/service/courts/models"
)

// Service сервис для работы с кортами
type Service struct {
	courtRepo CourtRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса кортов
func NewService(courtRepo CourtRepository, logger Logger) *Service {
	return &Service{
		courtRepo: courtRepo,
		logger:    logger,
	}
}

// Create создает новый корт
// Пара (название, вид спорта) уникальна в пределах комплекса
func (s *Service) Create(ctx context.Context, req *models.CreateCourtRequest) (*models.CourtResponse, error) {
	s.logger.Info("Create: creating court name=%q, sport=%s", req.Name, req.SportType)

	court, err := toDomainCourt(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.courtRepo.Create(ctx, court)
	if err != nil {
		if errors.Is(err, courtRepo.ErrDuplicateCourt) {
			s.logger.Warn("Create: court name=%q, sport=%s already exists", req.Name, req.SportType)
			return nil, ErrDuplicateCourt
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: court id=%d created", created.ID)
	return models.FromDomainCourt(created), nil
}

// GetByID получает корт по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.CourtResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: court id must be positive", ErrInvalidInput)
	}

	court, err := s.courtRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("GetByID: court id=%d not found", id)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("GetByID: repository error for court id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCourt(court), nil
}

// List получает список кортов, опционально фильтруя по статусу
func (s *Service) List(ctx context.Context, status *string) (*models.CourtListResponse, error) {
	var domainStatus *domain.CourtStatus
	if status != nil {
		st := domain.CourtStatus(strings.ToUpper(*status))
		if st != domain.CourtStatusActive && st != domain.CourtStatusInactive {
			s.logger.Warn("List: invalid status filter %q", *status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &st
	}

	courts, err := s.courtRepo.List(ctx, domainStatus)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d courts", len(courts))
	return models.FromDomainCourtList(courts), nil
}

// UpdateStatus меняет статус корта
// Неактивный корт не принимает новые брони; существующие не трогаются
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.CourtResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: court id must be positive", ErrInvalidInput)
	}

	st := domain.CourtStatus(strings.ToUpper(req.Status))
	if st != domain.CourtStatusActive && st != domain.CourtStatusInactive {
		s.logger.Warn("UpdateStatus: invalid status %q for court id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.courtRepo.UpdateStatus(ctx, id, st); err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("UpdateStatus: court id=%d not found", id)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("UpdateStatus: repository error for court id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: court id=%d is now %s", id, st)
	return s.GetByID(ctx, id)
}

// toDomainCourt валидирует запрос и собирает domain корт
func toDomainCourt(req *models.CreateCourtRequest) (*domain.Court, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	sport := domain.SportType(strings.ToUpper(req.SportType))
	if !sport.IsValid() {
		return nil, fmt.Errorf("%w: unsupported sport type %q", ErrInvalidInput, req.SportType)
	}

	if req.WeekdayRate <= 0 || req.WeekendRate <= 0 {
		return nil, fmt.Errorf("%w: hourly rates must be positive", ErrInvalidInput)
	}

	return &domain.Court{
		Name:        name,
		SportType:   sport,
		WeekdayRate: req.WeekdayRate,
		WeekendRate: req.WeekendRate,
		Status:      domain.CourtStatusActive,
	}, nil
}
