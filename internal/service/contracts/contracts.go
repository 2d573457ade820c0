package contracts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ContractRepository интерфейс репозитория договоров
type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) (*domain.Contract, error)
	GetByID(ctx context.Context, id int64) (*domain.Contract, error)
	GetByDetailsID(ctx context.Context, detailsID int64) (*domain.Contract, error)
	List(ctx context.Context, filter domain.ContractFilter) ([]*domain.Contract, error)
	UpdateDocumentURL(ctx context.Context, id int64, documentURL string) error
	Delete(ctx context.Context, id int64) error
}

// ContractDetailsRepository интерфейс репозитория условий договора
type ContractDetailsRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ContractDetails, error)
	DeleteByReservationID(ctx context.Context, reservationID int64) error
}

// DocumentRenderer отрисовывает условия договора в документ
type DocumentRenderer interface {
	Render(ctx context.Context, details *domain.ContractDetails, generatedAt time.Time) ([]byte, error)
}

// DocumentStore хранилище файлов документов
type DocumentStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Read(ctx context.Context, name string) ([]byte, error)
	Remove(ctx context.Context, name string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики сгенерированных документов
type Metrics interface {
	DocumentRendered(kind string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
