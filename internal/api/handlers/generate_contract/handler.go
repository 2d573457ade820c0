package generate_contract

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
	msgInvalidDetailsID = "некорректный ID условий договора"
	msgMissingPrincipal = "пользователь не аутентифицирован"
	msgNotFound         = "условия договора не найдены"
	msgForbidden        = "генерировать договор может только владелец или администратор"
	msgAlreadyExists    = "договор по этим условиям уже сгенерирован"
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

// Handle POST /api/v1/contracts/generate-from-details/{detailsId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	detailsID, err := strconv.ParseInt(vars["detailsId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /contracts/generate-from-details/{id} - Invalid details ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDetailsID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /contracts/generate-from-details/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	contract, err := h.service.Generate(r.Context(), detailsID, principal)
	if err != nil {
		switch {
		case errors.Is(err, contracts.ErrContractDetailsNotFound):
			h.logger.Warn("POST /contracts/generate-from-details/{id} - Details not found: details_id=%d", detailsID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, contracts.ErrAccessDenied):
			h.logger.Warn("POST /contracts/generate-from-details/{id} - Access denied: details_id=%d, user_id=%d",
				detailsID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, contracts.ErrContractAlreadyExists):
			h.logger.Warn("POST /contracts/generate-from-details/{id} - Contract already exists: details_id=%d", detailsID)
			handlers.RespondBadRequest(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /contracts/generate-from-details/{id} - Failed to generate contract: details_id=%d, error=%v",
				detailsID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /contracts/generate-from-details/{id} - Contract generated: contract_id=%d, details_id=%d",
		contract.ID, detailsID)
	handlers.RespondJSON(w, http.StatusCreated, contract)
}
