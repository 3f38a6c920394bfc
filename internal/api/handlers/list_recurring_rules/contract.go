package list_recurring_rules

import (
	"context"

	"github.com/m04kA/SMC-CourtService/internal/service/recurring/models"
)

type RecurringService interface {
	List(ctx context.Context, status *string) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
