package update_contract_details

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/contractdetails/models"
)

// UpdateContractDetailsRequest HTTP request model
// Отсутствующее поле означает "не менять"
type UpdateContractDetailsRequest struct {
	Title            *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description      *string  `json:"description,omitempty"`
	MonthlyPrice     *float64 `json:"monthly_price,omitempty" validate:"omitempty,gte=0"`
	DepositAmount    *float64 `json:"deposit_amount,omitempty" validate:"omitempty,gte=0"`
	PaymentDay       *int     `json:"payment_day,omitempty" validate:"omitempty,min=1,max=31"`
	StartDate        *string  `json:"start_date,omitempty"`
	EndDate          *string  `json:"end_date,omitempty"`
	IncludedServices *string  `json:"included_services,omitempty"`
	Rules            *string  `json:"rules,omitempty"`
	ExtraConditions  *string  `json:"extra_conditions,omitempty"`
	Status           *string  `json:"status,omitempty" validate:"omitempty,oneof=DRAFT READY CANCELLED"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса (с парсингом дат)
func (r *UpdateContractDetailsRequest) ToServiceRequest() (*models.UpdateRequest, error) {
	startDate, err := parseOptionalDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}

	endDate, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("end_date: %w", err)
	}

	return &models.UpdateRequest{
		Title:            r.Title,
		Description:      r.Description,
		MonthlyPrice:     r.MonthlyPrice,
		DepositAmount:    r.DepositAmount,
		PaymentDay:       r.PaymentDay,
		StartDate:        startDate,
		EndDate:          endDate,
		IncludedServices: r.IncludedServices,
		Rules:            r.Rules,
		ExtraConditions:  r.ExtraConditions,
		Status:           r.Status,
	}, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := handlers.ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
