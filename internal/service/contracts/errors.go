package contracts

import (
	"errors"
	"fmt"
)

var (
	// ErrContractNotFound возвращается, когда договор не найден
	ErrContractNotFound = errors.New("contract not found")

	// ErrContractDetailsNotFound возвращается, когда условия договора не найдены
	ErrContractDetailsNotFound = errors.New("contract details not found")

	// ErrContractAlreadyExists возвращается при повторной генерации по тем же условиям
	ErrContractAlreadyExists = errors.New("contract already generated for these details")

	// ErrDocumentNotFound возвращается, когда файл документа отсутствует в хранилище
	ErrDocumentNotFound = errors.New("document file not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrOnlyOwnerCanRegenerate возвращается студенту из договора при попытке перегенерации
	ErrOnlyOwnerCanRegenerate = fmt.Errorf("%w: only the owner can regenerate the contract", ErrAccessDenied)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
