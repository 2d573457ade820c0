package filestore

import "errors"

var (
	// ErrNotFound возвращается, когда файл документа отсутствует
	ErrNotFound = errors.New("filestore: file not found")

	// ErrInvalidName возвращается для имен, выходящих за пределы каталога хранилища
	ErrInvalidName = errors.New("filestore: invalid file name")

	// ErrWrite возвращается при ошибке записи файла
	ErrWrite = errors.New("filestore: failed to write file")

	// ErrRead возвращается при ошибке чтения файла
	ErrRead = errors.New("filestore: failed to read file")

	// ErrRemove возвращается при ошибке удаления файла
	ErrRemove = errors.New("filestore: failed to remove file")
)
