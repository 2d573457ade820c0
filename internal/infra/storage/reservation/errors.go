package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrDatesOverlap возвращается при нарушении exclusion constraint на подтвержденные брони
	ErrDatesOverlap = errors.New("reservation.repository: confirmed reservations overlap")

	// ErrActiveReservationExists возвращается при нарушении уникальности активной брони студента
	ErrActiveReservationExists = errors.New("reservation.repository: student already has an active reservation")

	// ErrRoomNotFound возвращается, если комната брони удалена до вставки
	ErrRoomNotFound = errors.New("reservation.repository: room not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
