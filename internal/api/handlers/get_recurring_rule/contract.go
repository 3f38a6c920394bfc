package get_recurring_rule

import (
	"context"

	"github.com/m04kA/SMC-CourtService/internal/service/recurring/models"
)

type RecurringService interface {
	GetByID(ctx context.Context, id int64) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
