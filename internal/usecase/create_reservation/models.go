package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Principal domain.Principal // Пользователь, создающий бронь
	RoomID    int64            // ID комнаты
	StudentID *int64           // Студент, за которого бронирует SUPERADMIN (опционально)
	StartDate time.Time        // Дата заезда (включительно)
	EndDate   time.Time        // Дата выезда (не включительно)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	RoomID     int64
	StudentID  *int64
	StartDate  time.Time
	EndDate    time.Time
	Status     string
	TotalPrice float64
}
