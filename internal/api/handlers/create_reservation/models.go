package create_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	createReservation "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
// student_id учитывается только для SUPERADMIN, даты в формате YYYY-MM-DD
type CreateReservationRequest struct {
	RoomID    int64  `json:"room_id" validate:"required,gt=0"`
	StudentID *int64 `json:"student_id,omitempty" validate:"omitempty,gt=0"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         int64   `json:"id"`
	RoomID     int64   `json:"room_id"`
	StudentID  *int64  `json:"student_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(principal domain.Principal) (*createReservation.Request, error) {
	startDate, err := handlers.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}

	endDate, err := handlers.ParseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("end_date: %w", err)
	}

	return &createReservation.Request{
		Principal: principal,
		RoomID:    r.RoomID,
		StudentID: r.StudentID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:         resp.ID,
		RoomID:     resp.RoomID,
		StudentID:  resp.StudentID,
		StartDate:  resp.StartDate.Format(domain.DateFormat),
		EndDate:    resp.EndDate.Format(domain.DateFormat),
		Status:     resp.Status,
		TotalPrice: resp.TotalPrice,
	}
}
