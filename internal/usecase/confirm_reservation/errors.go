package confirm_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_reservation: invalid input data")

	// ErrForbidden возвращается, если пользователь не владелец резиденции и не SUPERADMIN
	ErrForbidden = errors.New("confirm_reservation: not authorized to confirm this reservation")

	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("confirm_reservation: reservation not found")

	// ErrRoomNotFound возвращается, когда комната брони не найдена
	ErrRoomNotFound = errors.New("confirm_reservation: room not found")

	// ErrInvalidTransition возвращается при подтверждении брони в конечном статусе
	ErrInvalidTransition = errors.New("confirm_reservation: reservation cannot be confirmed in its current status")

	// ErrDatesOverlap возвращается, если период пересекается с другой подтвержденной бронью комнаты
	ErrDatesOverlap = errors.New("confirm_reservation: dates overlap with a confirmed reservation")

	// ErrConcurrentUpdate возвращается, если параллельная транзакция изменила те же данные
	ErrConcurrentUpdate = errors.New("confirm_reservation: concurrent update, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_reservation: internal error")
)
