package delete_recurring_rule

import (
	"context"

	"github.com/m04kA/SMC-CourtService/internal/service/recurring/models"
)

type RecurringService interface {
	Delete(ctx context.Context, id int64) (*models.DeleteRuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
