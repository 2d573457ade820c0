package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ContractResponse ответ с данными договора
type ContractResponse struct {
	ID            int64     `json:"id"`
	ReservationID *int64    `json:"reservation_id"`
	DetailsID     int64     `json:"details_id"`
	DocumentURL   *string   `json:"document_url"`
	CreatedAt     time.Time `json:"created_at"`
}

// Document содержимое файла договора для скачивания
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// FromDomainContract конвертирует domain.Contract в ContractResponse
func FromDomainContract(c *domain.Contract) *ContractResponse {
	return &ContractResponse{
		ID:            c.ID,
		ReservationID: c.ReservationID,
		DetailsID:     c.DetailsID,
		DocumentURL:   c.DocumentURL,
		CreatedAt:     c.CreatedAt,
	}
}

// FromDomainContractList конвертирует список domain.Contract
func FromDomainContractList(contracts []*domain.Contract) []*ContractResponse {
	result := make([]*ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		result = append(result, FromDomainContract(c))
	}
	return result
}
