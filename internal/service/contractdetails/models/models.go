package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модели

// UpdateRequest частичное обновление условий договора
// nil поле означает "не менять"
type UpdateRequest struct {
	Title            *string
	Description      *string
	MonthlyPrice     *float64
	DepositAmount    *float64
	PaymentDay       *int
	StartDate        *time.Time
	EndDate          *time.Time
	IncludedServices *string
	Rules            *string
	ExtraConditions  *string
	Status           *string
}

// ToDomainPatch конвертирует запрос в domain.ContractDetailsPatch
// Возвращает domain.ErrInvalidContractDetailsStatus для неизвестного статуса
func (r *UpdateRequest) ToDomainPatch() (*domain.ContractDetailsPatch, error) {
	patch := &domain.ContractDetailsPatch{
		Title:            r.Title,
		Description:      r.Description,
		MonthlyPrice:     r.MonthlyPrice,
		DepositAmount:    r.DepositAmount,
		PaymentDay:       r.PaymentDay,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludedServices: r.IncludedServices,
		Rules:            r.Rules,
		ExtraConditions:  r.ExtraConditions,
	}

	if r.Status != nil {
		status, err := domain.ParseContractDetailsStatus(*r.Status)
		if err != nil {
			return nil, err
		}
		patch.Status = &status
	}

	return patch, nil
}

// Response модели

// ContractDetailsResponse ответ с условиями договора
type ContractDetailsResponse struct {
	ID               int64     `json:"id"`
	ReservationID    int64     `json:"reservation_id"`
	RoomID           *int64    `json:"room_id"`
	StudentID        *int64    `json:"student_id"`
	OwnerID          *int64    `json:"owner_id"`
	Title            string    `json:"title"`
	Description      *string   `json:"description"`
	MonthlyPrice     float64   `json:"monthly_price"`
	DepositAmount    *float64  `json:"deposit_amount"`
	PaymentDay       *int      `json:"payment_day"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	IncludedServices *string   `json:"included_services"`
	Rules            *string   `json:"rules"`
	ExtraConditions  *string   `json:"extra_conditions"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FromDomainContractDetails конвертирует domain.ContractDetails в ContractDetailsResponse
func FromDomainContractDetails(d *domain.ContractDetails) *ContractDetailsResponse {
	return &ContractDetailsResponse{
		ID:               d.ID,
		ReservationID:    d.ReservationID,
		RoomID:           d.RoomID,
		StudentID:        d.StudentID,
		OwnerID:          d.OwnerID,
		Title:            d.Title,
		Description:      d.Description,
		MonthlyPrice:     d.MonthlyPrice,
		DepositAmount:    d.DepositAmount,
		PaymentDay:       d.PaymentDay,
		StartDate:        d.StartDate.Format(domain.DateFormat),
		EndDate:          d.EndDate.Format(domain.DateFormat),
		IncludedServices: d.IncludedServices,
		Rules:            d.Rules,
		ExtraConditions:  d.ExtraConditions,
		Status:           string(d.Status),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
