package create_recurring_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/api/middleware"
	recurringService "github.com/m04kA/SMC-CourtService/internal/service/recurring"
	"github.com/m04kA/SMC-CourtService/internal/service/recurring/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCourtNotFound      = "корт не найден"
	msgCourtInactive      = "корт не принимает бронирования"
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

// Handle POST /api/v1/recurring-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	createdBy, _ := middleware.UserIDFromContext(r.Context())

	var req models.CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /recurring-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req, createdBy)
	if err != nil {
		switch {
		case errors.Is(err, recurringService.ErrCourtNotFound):
			h.logger.Warn("POST /recurring-rules - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, recurringService.ErrCourtInactive):
			h.logger.Warn("POST /recurring-rules - Court inactive: court_id=%d", req.CourtID)
			handlers.RespondBadRequest(w, msgCourtInactive)

		case errors.Is(err, recurringService.ErrInvalidInput):
			h.logger.Warn("POST /recurring-rules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /recurring-rules - Failed to create rule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /recurring-rules - Rule created: rule_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
