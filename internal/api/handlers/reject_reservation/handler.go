package reject_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgMissingPrincipal     = "пользователь не аутентифицирован"
	msgForbidden            = "отклонять бронь может только владелец резиденции или администратор"
	msgNotFound             = "бронь не найдена"
	msgRoomNotFound         = "комната брони не найдена"
	msgInvalidTransition    = "бронь нельзя отклонить в текущем статусе"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/reject - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/reject - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	reservation, err := h.service.Reject(r.Context(), reservationID, principal)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/reject - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrRoomNotFound):
			h.logger.Warn("POST /reservations/{id}/reject - Room not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/reject - Access denied: reservation_id=%d, user_id=%d",
				reservationID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("POST /reservations/{id}/reject - Invalid transition: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /reservations/{id}/reject - Failed to reject reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/reject - Reservation rejected: reservation_id=%d, user_id=%d",
		reservationID, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
