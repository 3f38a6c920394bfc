package reactivate_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgCannotReactivate = "бронирование не может быть реактивировано"
	msgSlotConflict     = "слоты бронирования уже заняты"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reactivate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reactivate - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.Reactivate(r.Context(), bookingID)
	if err != nil {
		var conflictErr *bookings.SlotConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("PATCH /bookings/{id}/reactivate - Slot conflict: booking_id=%d, conflicts=%v",
				bookingID, conflictErr.Slots)
			handlers.RespondConflict(w, msgSlotConflict, conflictErr.Slots)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reactivate - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotReactivate):
			h.logger.Warn("PATCH /bookings/{id}/reactivate - Cannot reactivate: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotReactivate)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reactivate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("PATCH /bookings/{id}/reactivate - Failed to reactivate booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reactivate - Booking reactivated: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
