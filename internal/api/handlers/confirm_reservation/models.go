package confirm_reservation

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	confirmReservation "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_reservation"
)

// ConfirmReservationResponse HTTP response model
type ConfirmReservationResponse struct {
	ID                int64   `json:"id"`
	RoomID            int64   `json:"room_id"`
	StudentID         *int64  `json:"student_id"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Status            string  `json:"status"`
	TotalPrice        float64 `json:"total_price"`
	ContractDetailsID int64   `json:"contract_details_id"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmReservation.Response) *ConfirmReservationResponse {
	return &ConfirmReservationResponse{
		ID:                resp.ID,
		RoomID:            resp.RoomID,
		StudentID:         resp.StudentID,
		StartDate:         resp.StartDate.Format(domain.DateFormat),
		EndDate:           resp.EndDate.Format(domain.DateFormat),
		Status:            resp.Status,
		TotalPrice:        resp.TotalPrice,
		ContractDetailsID: resp.ContractDetailsID,
	}
}
