package update_court_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/service/courts"
	"github.com/m04kA/SMC-CourtService/internal/service/courts/models"
)

const (
	msgInvalidCourtID     = "некорректный ID корта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "корт не найден"
)

type Handler struct {
	service CourtService
	logger  Logger
}

func NewHandler(service CourtService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/courts/{courtId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courtID, err := strconv.ParseInt(vars["courtId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /courts/{id}/status - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /courts/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), courtID, &req)
	if err != nil {
		switch {
		case errors.Is(err, courts.ErrCourtNotFound):
			h.logger.Warn("PATCH /courts/{id}/status - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, courts.ErrInvalidInput):
			h.logger.Warn("PATCH /courts/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /courts/{id}/status - Failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /courts/{id}/status - Court status updated: court_id=%d, status=%s", courtID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
