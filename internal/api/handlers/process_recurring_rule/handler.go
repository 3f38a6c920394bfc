package process_recurring_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/api/middleware"
	processRecurring "github.com/m04kA/SMC-CourtService/internal/usecase/process_recurring"
)

const (
	msgInvalidRuleID = "некорректный ID правила"
	msgNotFound      = "правило не найдено"
	msgNotActive     = "правило не активно"
)

type Handler struct {
	useCase ProcessRecurringUseCase
	logger  Logger
}

func NewHandler(useCase ProcessRecurringUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/recurring-rules/{ruleId}/process
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	createdBy, _ := middleware.UserIDFromContext(r.Context())

	vars := mux.Vars(r)
	ruleID, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /recurring-rules/{id}/process - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	report, err := h.useCase.Execute(r.Context(), &processRecurring.Request{
		RuleID:    ruleID,
		CreatedBy: createdBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, processRecurring.ErrRuleNotFound):
			h.logger.Warn("POST /recurring-rules/{id}/process - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, processRecurring.ErrRuleNotActive):
			h.logger.Warn("POST /recurring-rules/{id}/process - Rule not active: rule_id=%d", ruleID)
			handlers.RespondBadRequest(w, msgNotActive)

		case errors.Is(err, processRecurring.ErrInvalidInput):
			h.logger.Warn("POST /recurring-rules/{id}/process - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRuleID)

		default:
			h.logger.Error("POST /recurring-rules/{id}/process - Failed: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /recurring-rules/{id}/process - Rule processed: rule_id=%d, success=%d, failed=%d",
		ruleID, report.Success, len(report.Failures))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseReport(report))
}
