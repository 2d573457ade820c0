package list_owner_reservations

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
	msgInvalidOwnerID   = "некорректный ID владельца"
	msgMissingPrincipal = "пользователь не аутентифицирован"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/reservations/owner/{ownerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerID, err := strconv.ParseInt(vars["ownerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /reservations/owner/{id} - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/owner/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	list, err := h.service.ListByOwner(r.Context(), ownerID, principal)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /reservations/owner/{id} - Access denied: owner_id=%d, user_id=%d",
				ownerID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /reservations/owner/{id} - Failed to list reservations: owner_id=%d, error=%v",
				ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/owner/{id} - Reservations retrieved: owner_id=%d, count=%d", ownerID, len(list))
	handlers.RespondJSON(w, http.StatusOK, list)
}
