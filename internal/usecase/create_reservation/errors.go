package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrForbidden возвращается, если роль пользователя не позволяет бронировать
	ErrForbidden = errors.New("create_reservation: only students and superadmins can create reservations")

	// ErrRoomNotAvailable возвращается, если комната не существует или недоступна
	ErrRoomNotAvailable = errors.New("create_reservation: room not available")

	// ErrActiveReservationExists возвращается, если у студента уже есть активная бронь
	ErrActiveReservationExists = errors.New("create_reservation: student already has an active reservation")

	// ErrDatesOverlap возвращается, если период пересекается с подтвержденной бронью комнаты
	ErrDatesOverlap = errors.New("create_reservation: dates overlap with a confirmed reservation")

	// ErrConcurrentUpdate возвращается, если параллельная транзакция изменила те же данные
	ErrConcurrentUpdate = errors.New("create_reservation: concurrent update, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
