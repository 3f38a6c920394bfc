package update_rule_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	recurringService "github.com/m04kA/SMC-CourtService/internal/service/recurring"
	"github.com/m04kA/SMC-CourtService/internal/service/recurring/models"
)

const (
	msgInvalidRuleID      = "некорректный ID правила"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "правило не найдено"
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

// Handle PATCH /api/v1/recurring-rules/{ruleId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ruleID, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /recurring-rules/{id}/status - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /recurring-rules/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), ruleID, &req)
	if err != nil {
		switch {
		case errors.Is(err, recurringService.ErrRuleNotFound):
			h.logger.Warn("PATCH /recurring-rules/{id}/status - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, recurringService.ErrInvalidInput):
			h.logger.Warn("PATCH /recurring-rules/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /recurring-rules/{id}/status - Failed: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /recurring-rules/{id}/status - Rule status updated: rule_id=%d, status=%s",
		ruleID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
