package delete_recurring_rule

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

// Handle DELETE /api/v1/recurring-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ruleID, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /recurring-rules/{id} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	result, err := h.service.Delete(r.Context(), ruleID)
	if err != nil {
		switch {
		case errors.Is(err, recurringService.ErrRuleNotFound):
			h.logger.Warn("DELETE /recurring-rules/{id} - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, recurringService.ErrInvalidInput):
			h.logger.Warn("DELETE /recurring-rules/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRuleID)

		default:
			h.logger.Error("DELETE /recurring-rules/{id} - Failed: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /recurring-rules/{id} - Rule deleted: rule_id=%d, removed_bookings=%d",
		ruleID, result.RemovedBookings)
	handlers.RespondJSON(w, http.StatusOK, result)
}
