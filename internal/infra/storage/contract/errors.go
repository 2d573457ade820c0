package contract

import "errors"

var (
	// ErrContractNotFound возвращается, когда договор не найден
	ErrContractNotFound = errors.New("contract.repository: contract not found")

	// ErrContractAlreadyExists возвращается, если для условий договора документ уже создан
	ErrContractAlreadyExists = errors.New("contract.repository: contract already exists for details")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("contract.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("contract.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("contract.repository: failed to scan row")
)
