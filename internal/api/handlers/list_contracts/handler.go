package list_contracts

import (
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
)

const msgMissingPrincipal = "пользователь не аутентифицирован"

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

// Handle GET /api/v1/contracts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /contracts - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	list, err := h.service.List(r.Context(), principal)
	if err != nil {
		h.logger.Error("GET /contracts - Failed to list contracts: user_id=%d, error=%v", principal.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /contracts - Contracts retrieved: user_id=%d, count=%d", principal.UserID, len(list))
	handlers.RespondJSON(w, http.StatusOK, list)
}
