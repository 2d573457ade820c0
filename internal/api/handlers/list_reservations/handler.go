package list_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

const (
	msgInvalidRoomID    = "некорректный ID комнаты"
	msgInvalidStatus    = "некорректный статус брони"
	msgMissingPrincipal = "пользователь не аутентифицирован"
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

// Handle GET /api/v1/reservations?status={status}&room_id={roomId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	req := &models.ListRequest{Principal: principal}

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if roomIDStr := query.Get("room_id"); roomIDStr != "" {
		roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
		if err != nil || roomID <= 0 {
			h.logger.Warn("GET /reservations - Invalid room_id: %s", roomIDStr)
			handlers.RespondBadRequest(w, msgInvalidRoomID)
			return
		}
		req.RoomID = &roomID
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved: user_id=%d, count=%d", principal.UserID, len(list))
	handlers.RespondJSON(w, http.StatusOK, list)
}
