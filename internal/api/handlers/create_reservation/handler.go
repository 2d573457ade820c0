package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingPrincipal   = "пользователь не аутентифицирован"
	msgInvalidInput       = "дата начала должна быть раньше даты окончания"
	msgForbidden          = "бронировать могут только студенты и администраторы"
	msgRoomNotAvailable   = "комната не найдена или недоступна"
	msgActiveReservation  = "у студента уже есть активная бронь"
	msgDatesOverlap       = "выбранные даты пересекаются с подтвержденной бронью"
	msgConcurrentUpdate   = "данные изменились, повторите запрос"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest(principal)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrForbidden):
			h.logger.Warn("POST /reservations - Forbidden: user_id=%d, role=%s", principal.UserID, principal.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createReservation.ErrRoomNotAvailable):
			h.logger.Warn("POST /reservations - Room not available: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotAvailable)

		case errors.Is(err, createReservation.ErrActiveReservationExists):
			h.logger.Warn("POST /reservations - Active reservation exists: user_id=%d", principal.UserID)
			handlers.RespondBadRequest(w, msgActiveReservation)

		case errors.Is(err, createReservation.ErrDatesOverlap):
			h.logger.Warn("POST /reservations - Dates overlap: room_id=%d, start=%s, end=%s",
				req.RoomID, req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgDatesOverlap)

		case errors.Is(err, createReservation.ErrConcurrentUpdate):
			h.logger.Warn("POST /reservations - Concurrent update: room_id=%d, user_id=%d", req.RoomID, principal.UserID)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: room_id=%d, user_id=%d, error=%v",
				req.RoomID, principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, room_id=%d",
		result.ID, result.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
