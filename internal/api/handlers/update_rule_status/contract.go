package update_rule_status

import (
	"context"

	"github.com/m04kA/SMC-CourtService/internal/service/recurring/models"
)

type RecurringService interface {
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
