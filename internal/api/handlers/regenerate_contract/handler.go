package regenerate_contract

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
	msgDetailsNotFound   = "условия договора не найдены"
	msgOnlyOwner         = "перегенерировать договор может только владелец"
	msgForbidden         = "доступ запрещен"
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

// Handle PUT /api/v1/contracts/{contractId}/regenerate-from-details
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	contractID, err := strconv.ParseInt(vars["contractId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /contracts/{id}/regenerate-from-details - Invalid contract ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidContractID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PUT /contracts/{id}/regenerate-from-details - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	contract, err := h.service.Regenerate(r.Context(), contractID, principal)
	if err != nil {
		switch {
		case errors.Is(err, contracts.ErrContractNotFound):
			h.logger.Warn("PUT /contracts/{id}/regenerate-from-details - Contract not found: contract_id=%d", contractID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, contracts.ErrContractDetailsNotFound):
			h.logger.Warn("PUT /contracts/{id}/regenerate-from-details - Details not found: contract_id=%d", contractID)
			handlers.RespondNotFound(w, msgDetailsNotFound)

		// ErrOnlyOwnerCanRegenerate оборачивает ErrAccessDenied, поэтому проверяется раньше
		case errors.Is(err, contracts.ErrOnlyOwnerCanRegenerate):
			h.logger.Warn("PUT /contracts/{id}/regenerate-from-details - Not the owner: contract_id=%d, user_id=%d",
				contractID, principal.UserID)
			handlers.RespondForbidden(w, msgOnlyOwner)

		case errors.Is(err, contracts.ErrAccessDenied):
			h.logger.Warn("PUT /contracts/{id}/regenerate-from-details - Access denied: contract_id=%d, user_id=%d",
				contractID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /contracts/{id}/regenerate-from-details - Failed to regenerate contract: contract_id=%d, error=%v",
				contractID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /contracts/{id}/regenerate-from-details - Contract regenerated: contract_id=%d, user_id=%d",
		contractID, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, contract)
}
