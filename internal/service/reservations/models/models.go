package models

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модели

// ListRequest запрос на получение списка бронирований
type ListRequest struct {
	Principal domain.Principal
	Status    *string // Фильтр по статусу (опционально)
	RoomID    *int64  // Фильтр по комнате (опционально)
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID         int64   `json:"id"`
	RoomID     int64   `json:"room_id"`
	StudentID  *int64  `json:"student_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
}

// ReservationViewResponse бронирование с данными владельца, студента и резиденции
type ReservationViewResponse struct {
	ReservationResponse
	OwnerName        *string  `json:"owner_name"`
	StudentName      *string  `json:"student_name"`
	ResidenceName    *string  `json:"residence_name"`
	ResidenceAddress *string  `json:"residence_address"`
	RoomPrice        *float64 `json:"room_price"`
}

// FromDomainReservation конвертирует domain.Reservation в ReservationResponse
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:         r.ID,
		RoomID:     r.RoomID,
		StudentID:  r.StudentID,
		StartDate:  r.StartDate.Format(domain.DateFormat),
		EndDate:    r.EndDate.Format(domain.DateFormat),
		Status:     string(r.Status),
		TotalPrice: r.TotalPrice,
	}
}

// FromDomainReservationViews конвертирует список domain.ReservationView
func FromDomainReservationViews(views []*domain.ReservationView) []*ReservationViewResponse {
	result := make([]*ReservationViewResponse, 0, len(views))
	for _, v := range views {
		result = append(result, &ReservationViewResponse{
			ReservationResponse: *FromDomainReservation(&v.Reservation),
			OwnerName:           v.OwnerName,
			StudentName:         v.StudentName,
			ResidenceName:       v.ResidenceName,
			ResidenceAddress:    v.ResidenceAddress,
			RoomPrice:           v.RoomPrice,
		})
	}
	return result
}
