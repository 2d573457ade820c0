package delete_contract

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/contracts"
)

const (
	msgInvalidContractID = "некорректный ID договора"
	msgMissingPrincipal  = "пользователь не аутентифицирован"
	msgNotFound          = "договор не найден"
	msgForbidden         = "удалять договоры может только администратор"
)

type Handler struct {
	service ContractService
	logger  Logger
}

func NewHandler(service ContractService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/contracts/{contractId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	contractID, err := strconv.ParseInt(vars["contractId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /contracts/{id} - Invalid contract ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidContractID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("DELETE /contracts/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	if err := h.service.Delete(r.Context(), contractID, principal); err != nil {
		switch {
		case errors.Is(err, contracts.ErrContractNotFound):
			h.logger.Warn("DELETE /contracts/{id} - Contract not found: contract_id=%d", contractID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, contracts.ErrAccessDenied):
			h.logger.Warn("DELETE /contracts/{id} - Access denied: contract_id=%d, user_id=%d", contractID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /contracts/{id} - Failed to delete contract: contract_id=%d, error=%v", contractID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /contracts/{id} - Contract deleted: contract_id=%d, user_id=%d", contractID, principal.UserID)
	handlers.RespondNoContent(w)
}
