package download_contract

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/contracts/models"
)

type ContractService interface {
	Download(ctx context.Context, contractID int64, principal domain.Principal) (*models.Document, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
