// Package model содержит доменные сущности системы агроведа.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer представляет зарегистрированного участника цепочки поставок.
// Телефон является естественным ключом: в реестре не бывает двух записей
// с одинаковым телефоном.
type Customer struct {
	Phone     string    `json:"phone"`
	MemberID  string    `json:"memberId"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BatchStatus описывает этап обработки партии продукции.
type BatchStatus string

const (
	BatchStatusPending BatchStatus = "Pending"
	BatchStatusGraded  BatchStatus = "Graded"
	BatchStatusStored  BatchStatus = "Stored"
	BatchStatusShipped BatchStatus = "Shipped"
	BatchStatusRetail  BatchStatus = "Retail"
)

// StatusOrder задаёт канонический порядок этапов. Журнал партий порядок
// переходов не проверяет; таблица нужна вызывающей стороне, если та захочет
// наложить более строгую политику поверх журнала.
var StatusOrder = []BatchStatus{
	BatchStatusPending,
	BatchStatusGraded,
	BatchStatusStored,
	BatchStatusShipped,
	BatchStatusRetail,
}

// IsValid сообщает, является ли значение одним из пяти известных этапов.
func (s BatchStatus) IsValid() bool {
	for _, known := range StatusOrder {
		if s == known {
			return true
		}
	}
	return false
}

// Batch описывает отслеживаемую партию одного вида продукции.
type Batch struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Farmer     string          `json:"farmer"`
	BatchID    string          `json:"batchId"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	Location   string          `json:"location"`
	EntryDate  string          `json:"entryDate"`
	ExpiryDate string          `json:"expiryDate"`
	Status     BatchStatus     `json:"status"`
	Grade      string          `json:"grade,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"image,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}
