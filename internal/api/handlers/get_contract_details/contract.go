package get_contract_details

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/contractdetails/models"
)

type ContractDetailsService interface {
	GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.ContractDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
