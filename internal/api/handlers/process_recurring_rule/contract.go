package process_recurring_rule

import (
	"context"

	processRecurring "github.com/m04kA/SMC-CourtService/internal/usecase/process_recurring"
)

type ProcessRecurringUseCase interface {
	Execute(ctx context.Context, req *processRecurring.Request) (*processRecurring.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
