package get_contract_details_by_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/contractdetails"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgMissingPrincipal     = "пользователь не аутентифицирован"
	msgNotFound             = "для брони нет условий договора"
	msgForbidden            = "доступ запрещен"
)

type Handler struct {
	service ContractDetailsService
	logger  Logger
}

func NewHandler(service ContractDetailsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/contract_details/by-reservation/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /contract_details/by-reservation/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /contract_details/by-reservation/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	details, err := h.service.GetByReservationID(r.Context(), reservationID, principal)
	if err != nil {
		switch {
		case errors.Is(err, contractdetails.ErrContractDetailsNotFound):
			h.logger.Warn("GET /contract_details/by-reservation/{id} - Details not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, contractdetails.ErrAccessDenied):
			h.logger.Warn("GET /contract_details/by-reservation/{id} - Access denied: reservation_id=%d, user_id=%d",
				reservationID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /contract_details/by-reservation/{id} - Failed to get details: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /contract_details/by-reservation/{id} - Details retrieved: reservation_id=%d, details_id=%d",
		reservationID, details.ID)
	handlers.RespondJSON(w, http.StatusOK, details)
}
