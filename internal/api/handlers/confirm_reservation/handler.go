package confirm_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	confirmReservation "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgMissingPrincipal     = "пользователь не аутентифицирован"
	msgForbidden            = "подтверждать бронь может только владелец резиденции или администратор"
	msgNotFound             = "бронь не найдена"
	msgRoomNotFound         = "комната брони не найдена"
	msgInvalidTransition    = "бронь нельзя подтвердить в текущем статусе"
	msgDatesOverlap         = "даты брони пересекаются с другой подтвержденной бронью"
	msgConcurrentUpdate     = "данные изменились, повторите запрос"
)

type Handler struct {
	useCase ConfirmReservationUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/confirm - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/confirm - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmReservation.Request{
		Principal:     principal,
		ReservationID: reservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/confirm - Invalid input: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		case errors.Is(err, confirmReservation.ErrForbidden):
			h.logger.Warn("POST /reservations/{id}/confirm - Forbidden: reservation_id=%d, user_id=%d",
				reservationID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/confirm - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations/{id}/confirm - Room not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, confirmReservation.ErrInvalidTransition):
			h.logger.Warn("POST /reservations/{id}/confirm - Invalid transition: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, confirmReservation.ErrDatesOverlap):
			h.logger.Warn("POST /reservations/{id}/confirm - Dates overlap: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgDatesOverlap)

		case errors.Is(err, confirmReservation.ErrConcurrentUpdate):
			h.logger.Warn("POST /reservations/{id}/confirm - Concurrent update: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /reservations/{id}/confirm - Failed to confirm reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/confirm - Reservation confirmed: reservation_id=%d, contract_details_id=%d",
		result.ID, result.ContractDetailsID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
