package confirm_reservation

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модель запроса на подтверждение брони
type Request struct {
	Principal     domain.Principal
	ReservationID int64
}

// Response модель ответа с подтвержденной бронью
type Response struct {
	ID                int64
	RoomID            int64
	StudentID         *int64
	StartDate         time.Time
	EndDate           time.Time
	Status            string
	TotalPrice        float64
	ContractDetailsID int64 // условия договора, созданные или найденные при подтверждении
}
