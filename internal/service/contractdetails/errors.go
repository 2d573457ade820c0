package contractdetails

import "errors"

var (
	// ErrContractDetailsNotFound возвращается, когда условия договора не найдены
	ErrContractDetailsNotFound = errors.New("contract details not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
