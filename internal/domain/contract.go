package domain

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Contract сгенерированный документ договора (не более одного на ContractDetails)
type Contract struct {
	ID            int64
	ReservationID *int64
	DetailsID     int64
	DocumentURL   *string // NULL до первой генерации
	CreatedAt     time.Time
}

// Filename возвращает имя файла документа из DocumentURL или пустую строку
func (c *Contract) Filename() string {
	if c.DocumentURL == nil || *c.DocumentURL == "" {
		return ""
	}
	return path.Base(*c.DocumentURL)
}

// ContractFilter фильтр для списка договоров
type ContractFilter struct {
	OwnerID   *int64 // договоры, где пользователь - владелец в ContractDetails
	StudentID *int64 // договоры, где пользователь - студент в ContractDetails
}

// DocumentFilename детерминированное имя файла документа для пары (reservation, details)
func DocumentFilename(reservationID, detailsID int64) string {
	return fmt.Sprintf("contract_reservation_%d_details_%d.pdf", reservationID, detailsID)
}

// DocumentURL публичный путь к файлу документа
func DocumentURL(filename string) string {
	return strings.TrimSuffix(DocumentsURLPrefix, "/") + "/" + filename
}
