package contractdetails

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ContractDetailsRepository интерфейс репозитория условий договора
type ContractDetailsRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ContractDetails, error)
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.ContractDetails, error)
	Update(ctx context.Context, details *domain.ContractDetails) (*domain.ContractDetails, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
