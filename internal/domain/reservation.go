package domain

import (
	"errors"
	"time"
)

// ErrInvalidReservationStatus возвращается при разборе неизвестного статуса
var ErrInvalidReservationStatus = errors.New("invalid reservation status")

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationRejected  ReservationStatus = "REJECTED"
	ReservationCompleted ReservationStatus = "COMPLETED"
)

// Reservation бронирование комнаты студентом на период [StartDate, EndDate)
type Reservation struct {
	ID         int64
	RoomID     int64
	StudentID  *int64 // NULL, если бронь создана администратором без студента
	StartDate  time.Time
	EndDate    time.Time
	Status     ReservationStatus
	TotalPrice float64
}

// IsActive returns true if the reservation blocks the student from creating another one
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// IsTerminal returns true for REJECTED, CANCELLED and COMPLETED
func (r *Reservation) IsTerminal() bool {
	return r.Status == ReservationRejected ||
		r.Status == ReservationCancelled ||
		r.Status == ReservationCompleted
}

// CanBeConfirmed returns true if confirm is allowed (повторное подтверждение идемпотентно)
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// CanBeRejected returns true if reject is allowed (повторное отклонение идемпотентно)
func (r *Reservation) CanBeRejected() bool {
	return r.Status == ReservationPending || r.Status == ReservationRejected
}

// Overlaps проверяет пересечение с периодом [start, end)
// Три случая: начало нового периода внутри существующего,
// конец нового периода внутри существующего, новый период целиком содержит существующий
func (r *Reservation) Overlaps(start, end time.Time) bool {
	startInside := !r.StartDate.After(start) && r.EndDate.After(start)
	endInside := r.StartDate.Before(end) && !r.EndDate.Before(end)
	contains := !r.StartDate.Before(start) && !r.EndDate.After(end)
	return startInside || endInside || contains
}

// ActiveReservationStatuses статусы, при которых студент не может создать новую бронь
var ActiveReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
}

// ParseReservationStatus конвертирует строку в ReservationStatus с валидацией
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	switch status {
	case ReservationPending, ReservationConfirmed, ReservationCancelled,
		ReservationRejected, ReservationCompleted:
		return status, nil
	}
	return "", ErrInvalidReservationStatus
}

// ReservationFilter фильтр для списка бронирований
type ReservationFilter struct {
	Status    *ReservationStatus // Фильтр по статусу (опционально)
	RoomID    *int64             // Фильтр по комнате (опционально)
	StudentID *int64             // Только брони студента (опционально)
	OwnerID   *int64             // Только брони в резиденциях владельца (опционально)
}

// ReservationView бронирование с данными для отображения
// (владелец, студент, резиденция, цена комнаты)
type ReservationView struct {
	Reservation

	OwnerName        *string
	StudentName      *string
	ResidenceName    *string
	ResidenceAddress *string
	RoomPrice        *float64
}
