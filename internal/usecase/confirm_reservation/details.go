package confirm_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// newContractDetails заполняет черновик условий договора по брони и комнате
// Все значения редактируются владельцем до генерации документа
func newContractDetails(reservation *domain.Reservation, room *domain.Room) *domain.ContractDetails {
	description := fmt.Sprintf("Contract details for room '%s' in residence '%s'.",
		room.Title, room.ResidenceName)

	return &domain.ContractDetails{
		ReservationID:    reservation.ID,
		RoomID:           ptr.Ptr(room.ID),
		StudentID:        reservation.StudentID,
		OwnerID:          room.OwnerID,
		Title:            fmt.Sprintf("Rental contract - %s", room.Title),
		Description:      ptr.Ptr(description),
		MonthlyPrice:     room.PricePerMonth,
		DepositAmount:    ptr.Ptr(room.PricePerMonth), // один месяц залога
		PaymentDay:       ptr.Ptr(domain.DefaultPaymentDay),
		StartDate:        reservation.StartDate,
		EndDate:          reservation.EndDate,
		IncludedServices: ptr.Ptr(domain.DefaultIncludedServices),
		Rules:            ptr.Ptr(domain.DefaultRules),
		ExtraConditions:  ptr.Ptr(""),
		Status:           domain.ContractDetailsDraft,
	}
}
