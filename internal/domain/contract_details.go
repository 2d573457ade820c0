package domain

import (
	"errors"
	"time"
)

// ErrInvalidContractDetailsStatus возвращается при разборе неизвестного статуса
var ErrInvalidContractDetailsStatus = errors.New("invalid contract details status")

// ContractDetailsStatus статус редактируемых условий договора
// Переходы задает владелец, система их не проверяет
type ContractDetailsStatus string

const (
	ContractDetailsDraft     ContractDetailsStatus = "DRAFT"
	ContractDetailsReady     ContractDetailsStatus = "READY"
	ContractDetailsCancelled ContractDetailsStatus = "CANCELLED"
)

// ContractDetails условия договора аренды (не более одной записи на бронь)
type ContractDetails struct {
	ID            int64
	ReservationID int64
	RoomID        *int64
	StudentID     *int64
	OwnerID       *int64

	Title       string
	Description *string

	MonthlyPrice  float64
	DepositAmount *float64
	PaymentDay    *int // день оплаты (1-31)

	StartDate time.Time
	EndDate   time.Time

	IncludedServices *string
	Rules            *string
	ExtraConditions  *string

	Status ContractDetailsStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwner returns true if the user is the owner on the details
func (d *ContractDetails) IsOwner(userID int64) bool {
	return d.OwnerID != nil && *d.OwnerID == userID
}

// IsParty returns true if the user is the owner or the student on the details
func (d *ContractDetails) IsParty(userID int64) bool {
	return d.IsOwner(userID) || (d.StudentID != nil && *d.StudentID == userID)
}

// ParseContractDetailsStatus конвертирует строку в ContractDetailsStatus с валидацией
func ParseContractDetailsStatus(s string) (ContractDetailsStatus, error) {
	status := ContractDetailsStatus(s)
	switch status {
	case ContractDetailsDraft, ContractDetailsReady, ContractDetailsCancelled:
		return status, nil
	}
	return "", ErrInvalidContractDetailsStatus
}

// ContractDetailsPatch частичное обновление условий договора
// nil поле означает "не менять"
type ContractDetailsPatch struct {
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
	Status           *ContractDetailsStatus
}

// IsEmpty returns true if the patch changes nothing
func (p *ContractDetailsPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.MonthlyPrice == nil &&
		p.DepositAmount == nil && p.PaymentDay == nil && p.StartDate == nil &&
		p.EndDate == nil && p.IncludedServices == nil && p.Rules == nil &&
		p.ExtraConditions == nil && p.Status == nil
}

// Apply переносит заданные поля патча в details
func (p *ContractDetailsPatch) Apply(d *ContractDetails) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = p.Description
	}
	if p.MonthlyPrice != nil {
		d.MonthlyPrice = *p.MonthlyPrice
	}
	if p.DepositAmount != nil {
		d.DepositAmount = p.DepositAmount
	}
	if p.PaymentDay != nil {
		d.PaymentDay = p.PaymentDay
	}
	if p.StartDate != nil {
		d.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		d.EndDate = *p.EndDate
	}
	if p.IncludedServices != nil {
		d.IncludedServices = p.IncludedServices
	}
	if p.Rules != nil {
		d.Rules = p.Rules
	}
	if p.ExtraConditions != nil {
		d.ExtraConditions = p.ExtraConditions
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
}
