package contractdetails

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateDetails проверяет итоговое состояние условий договора после применения патча
func validateDetails(d *domain.ContractDetails) error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}

	if utf8.RuneCountInString(d.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if d.MonthlyPrice < domain.MinMonthlyPrice {
		return fmt.Errorf("%w: monthly_price must not be negative", ErrInvalidInput)
	}

	if d.DepositAmount != nil && *d.DepositAmount < 0 {
		return fmt.Errorf("%w: deposit_amount must not be negative", ErrInvalidInput)
	}

	if d.PaymentDay != nil && (*d.PaymentDay < domain.MinPaymentDay || *d.PaymentDay > domain.MaxPaymentDay) {
		return fmt.Errorf("%w: payment_day must be between %d and %d",
			ErrInvalidInput, domain.MinPaymentDay, domain.MaxPaymentDay)
	}

	if !d.StartDate.Before(d.EndDate) {
		return fmt.Errorf("%w: start_date must be before end_date", ErrInvalidInput)
	}

	texts := map[string]*string{
		"description":       d.Description,
		"included_services": d.IncludedServices,
		"rules":             d.Rules,
		"extra_conditions":  d.ExtraConditions,
	}
	for field, text := range texts {
		if text != nil && utf8.RuneCountInString(*text) > domain.MaxTextLength {
			return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, domain.MaxTextLength)
		}
	}

	return nil
}
