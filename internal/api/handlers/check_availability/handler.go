package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-CourtService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

const (
	msgInvalidCourtID   = "некорректный ID корта"
	msgInvalidQuery     = "требуются параметры date, startTime и endTime"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgCourtNotFound    = "корт не найден"
	msgInvalidTimeRange = "некорректный временной диапазон"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/availability?date=YYYY-MM-DD&startTime=HH:MM&endTime=HH:MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courtID, err := strconv.ParseInt(vars["courtId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	startStr := query.Get("startTime")
	endStr := query.Get("endTime")
	if dateStr == "" || startStr == "" || endStr == "" {
		h.logger.Warn("GET /courts/{id}/availability - Missing query parameters")
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid startTime %q: %v", startStr, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	endTime, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid endTime %q: %v", endStr, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		CourtID:   courtID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{id}/availability - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidTimeRange):
			h.logger.Warn("GET /courts/{id}/availability - Invalid time range: %s-%s", startStr, endStr)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /courts/{id}/availability - Failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
