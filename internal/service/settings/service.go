package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CourtService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CourtService/internal/service/settings/models"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Service сервис настроек комплекса
// Запись одна на весь комплекс и создается лениво при первом чтении
type Service struct {
	repo   SettingsRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Get возвращает настройки, создавая дефолтные при первом обращении
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	current, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(current), nil
}

// Update меняет настройки; nil-поля запроса остаются без изменений
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating facility settings")

	current, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if req.OpenTime != nil {
		t, err := types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: open_time: %v", ErrInvalidInput, err)
		}
		current.OpenTime = t
	}
	if req.CloseTime != nil {
		t, err := types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: close_time: %v", ErrInvalidInput, err)
		}
		current.CloseTime = t
	}
	if !current.OpenTime.IsBefore(current.CloseTime) {
		return nil, fmt.Errorf("%w: open_time must be before close_time", ErrInvalidInput)
	}

	if req.WeekendDays != nil {
		days := make([]time.Weekday, 0, len(*req.WeekendDays))
		for _, d := range *req.WeekendDays {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("%w: weekend day must be in 0..6", ErrInvalidInput)
			}
			days = append(days, time.Weekday(d))
		}
		current.WeekendDays = days
	}

	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if len(currency) != 3 {
			return nil, fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidInput)
		}
		current.Currency = currency
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings updated")
	return models.FromDomainSettings(updated), nil
}

// getOrCreate читает настройки, создавая дефолтную запись при её отсутствии
func (s *Service) getOrCreate(ctx context.Context) (*domain.Settings, error) {
	current, err := s.repo.Get(ctx)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("getOrCreate: repository error: %v", err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	s.logger.Info("getOrCreate: no settings row, creating defaults")
	created, err := s.repo.Create(ctx, domain.DefaultSettings())
	if err != nil {
		s.logger.Error("getOrCreate: failed to create default settings: %v", err)
		return nil, fmt.Errorf("%w: failed to create default settings: %v", ErrInternal, err)
	}
	return created, nil
}
