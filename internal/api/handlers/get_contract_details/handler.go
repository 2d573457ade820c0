package get_contract_details

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
	msgInvalidDetailsID = "некорректный ID условий договора"
	msgMissingPrincipal = "пользователь не аутентифицирован"
	msgNotFound         = "условия договора не найдены"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/contract_details/{detailsId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	detailsID, err := strconv.ParseInt(vars["detailsId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /contract_details/{id} - Invalid details ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDetailsID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /contract_details/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	details, err := h.service.GetByID(r.Context(), detailsID, principal)
	if err != nil {
		switch {
		case errors.Is(err, contractdetails.ErrContractDetailsNotFound):
			h.logger.Warn("GET /contract_details/{id} - Details not found: details_id=%d", detailsID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, contractdetails.ErrAccessDenied):
			h.logger.Warn("GET /contract_details/{id} - Access denied: details_id=%d, user_id=%d",
				detailsID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /contract_details/{id} - Failed to get details: details_id=%d, error=%v", detailsID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /contract_details/{id} - Details retrieved: details_id=%d, user_id=%d", detailsID, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, details)
}
