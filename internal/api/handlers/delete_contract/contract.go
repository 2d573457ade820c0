package delete_contract

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

type ContractService interface {
	Delete(ctx context.Context, contractID int64, principal domain.Principal) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
