package get_recurring_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	recurringService "github.com/m04kA/SMC-CourtService/internal/service/recurring"
)

const (
	msgInvalidRuleID = "некорректный ID правила"
	msgNotFound      = "правило не найдено"
)

type Handler struct {
	service RecurringService
	logger  Logger
}

func NewHandler(service RecurringService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/recurring-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ruleID, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /recurring-rules/{id} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	result, err := h.service.GetByID(r.Context(), ruleID)
	if err != nil {
		switch {
		case errors.Is(err, recurringService.ErrRuleNotFound):
			h.logger.Warn("GET /recurring-rules/{id} - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, recurringService.ErrInvalidInput):
			h.logger.Warn("GET /recurring-rules/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRuleID)

		default:
			h.logger.Error("GET /recurring-rules/{id} - Failed to get rule: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
