package get_contract_details_by_reservation

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/contractdetails/models"
)

type ContractDetailsService interface {
	GetByReservationID(ctx context.Context, reservationID int64, principal domain.Principal) (*models.ContractDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
