package generate_contract

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/contracts/models"
)

type ContractService interface {
	Generate(ctx context.Context, detailsID int64, principal domain.Principal) (*models.ContractResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
