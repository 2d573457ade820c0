package render

import "errors"

var (
	// ErrNilDetails возвращается при попытке отрисовать пустые условия договора
	ErrNilDetails = errors.New("render: contract details are nil")

	// ErrRender возвращается при ошибке построения PDF
	ErrRender = errors.New("render: failed to render document")
)
