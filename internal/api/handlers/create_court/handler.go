package create_court

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/service/courts"
	"github.com/m04kA/SMC-CourtService/internal/service/courts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDuplicateCourt     = "корт с таким названием и видом спорта уже существует"
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

// Handle POST /api/v1/courts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourtRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, courts.ErrDuplicateCourt):
			h.logger.Warn("POST /courts - Duplicate court: name=%q, sport=%s", req.Name, req.SportType)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateCourt)

		case errors.Is(err, courts.ErrInvalidInput):
			h.logger.Warn("POST /courts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /courts - Failed to create court: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /courts - Court created: court_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
