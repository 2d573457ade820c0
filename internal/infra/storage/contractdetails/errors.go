package contractdetails

import "errors"

var (
	// ErrContractDetailsNotFound возвращается, когда условия договора не найдены
	ErrContractDetailsNotFound = errors.New("contractdetails.repository: contract details not found")

	// ErrContractDetailsAlreadyExist возвращается при повторном создании условий для брони
	ErrContractDetailsAlreadyExist = errors.New("contractdetails.repository: contract details already exist for reservation")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("contractdetails.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("contractdetails.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("contractdetails.repository: failed to scan row")
)
