package settings

import (
	"context"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Create(ctx context.Context, s *domain.Settings) (*domain.Settings, error)
	Update(ctx context.Context, s *domain.Settings) (*domain.Settings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
