package update_contract_details

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
	msgInvalidDetailsID   = "некорректный ID условий договора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingPrincipal   = "пользователь не аутентифицирован"
	msgNotFound           = "условия договора не найдены"
	msgForbidden          = "изменять условия договора может только владелец или администратор"
	msgInvalidInput       = "некорректные условия договора"
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

// Handle PUT /api/v1/contract_details/{detailsId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	detailsID, err := strconv.ParseInt(vars["detailsId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /contract_details/{id} - Invalid details ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDetailsID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("PUT /contract_details/{id} - Missing principal")
		handlers.RespondUnauthorized(w, msgMissingPrincipal)
		return
	}

	var req UpdateContractDetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /contract_details/{id} - Invalid request body: details_id=%d, error=%v", detailsID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /contract_details/{id} - Failed to parse dates: details_id=%d, error=%v", detailsID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	details, err := h.service.Update(r.Context(), detailsID, principal, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, contractdetails.ErrContractDetailsNotFound):
			h.logger.Warn("PUT /contract_details/{id} - Details not found: details_id=%d", detailsID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, contractdetails.ErrAccessDenied):
			h.logger.Warn("PUT /contract_details/{id} - Access denied: details_id=%d, user_id=%d",
				detailsID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, contractdetails.ErrInvalidInput):
			h.logger.Warn("PUT /contract_details/{id} - Invalid input: details_id=%d, error=%v", detailsID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /contract_details/{id} - Failed to update details: details_id=%d, error=%v", detailsID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /contract_details/{id} - Details updated: details_id=%d, user_id=%d", detailsID, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, details)
}
