package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CourtService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgCourtNotFound       = "корт не найден"
	msgCourtInactive       = "корт не принимает бронирования"
	msgInvalidTimeRange    = "некорректный временной диапазон"
	msgSlotConflict        = "часть запрошенных слотов уже занята"
	msgAdvanceExceedsTotal = "аванс превышает итоговую сумму"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	createdBy, _ := middleware.UserIDFromContext(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(createdBy)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *createBooking.SlotConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /bookings - Slot conflict: court_id=%d, date=%s, conflicts=%v",
				req.CourtID, req.Date, conflictErr.Slots)
			handlers.RespondConflict(w, msgSlotConflict, conflictErr.Slots)

		case errors.Is(err, createBooking.ErrCourtNotFound):
			h.logger.Warn("POST /bookings - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createBooking.ErrCourtInactive):
			h.logger.Warn("POST /bookings - Court inactive: court_id=%d", req.CourtID)
			handlers.RespondBadRequest(w, msgCourtInactive)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: %s-%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrAdvanceExceedsTotal):
			h.logger.Warn("POST /bookings - Advance exceeds total: court_id=%d", req.CourtID)
			handlers.RespondBadRequest(w, msgAdvanceExceedsTotal)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, court_id=%d", result.ID, result.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
