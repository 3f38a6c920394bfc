package list_recurring_rules

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	recurringService "github.com/m04kA/SMC-CourtService/internal/service/recurring"
)

const (
	msgInvalidStatus = "некорректный статус правила"
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

// Handle GET /api/v1/recurring-rules?status=ACTIVE
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.List(r.Context(), status)
	if err != nil {
		switch {
		case errors.Is(err, recurringService.ErrInvalidInput):
			h.logger.Warn("GET /recurring-rules - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /recurring-rules - Failed to list rules: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
