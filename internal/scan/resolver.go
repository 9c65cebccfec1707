package scan

import (
	"strings"

	"github.com/agroveda/agroveda-system/internal/memberid"
	"github.com/agroveda/agroveda-system/internal/model"
)

// MemberDirectory — поиск участника по коду, который обязан поддерживать
// реестр покупателей.
type MemberDirectory interface {
	FindByPhone(phone string) *model.Customer
	FindByMemberID(id string) *model.Customer
}

// BatchDirectory — поиск партии по коду, который обязан поддерживать журнал.
type BatchDirectory interface {
	FindByID(id string) *model.Batch
}

// Resolution — результат интерпретации распознанного кода. Заполнено не
// больше одного поля; пустая Resolution означает, что код никому не известен.
type Resolution struct {
	Customer *model.Customer
	Batch    *model.Batch
}

// Found сообщает, удалось ли сопоставить код с участником или партией.
func (r Resolution) Found() bool {
	return r.Customer != nil || r.Batch != nil
}

// Resolver интерпретирует распознанный код: сначала как членский
// идентификатор, затем как телефон, затем как идентификатор партии.
// Первое совпадение выигрывает.
type Resolver struct {
	members MemberDirectory
	batches BatchDirectory
}

// NewResolver создаёт резолвер поверх реестра и журнала.
func NewResolver(members MemberDirectory, batches BatchDirectory) *Resolver {
	return &Resolver{
		members: members,
		batches: batches,
	}
}

// Resolve сопоставляет код с участником или партией. Неизвестный код — не
// ошибка, возвращается пустая Resolution.
func (r *Resolver) Resolve(code string) Resolution {
	code = strings.TrimSpace(code)
	if code == "" {
		return Resolution{}
	}

	if strings.HasPrefix(strings.ToUpper(code), memberid.Prefix) {
		if c := r.members.FindByMemberID(strings.ToUpper(code)); c != nil {
			return Resolution{Customer: c}
		}
	}

	if c := r.members.FindByPhone(code); c != nil {
		return Resolution{Customer: c}
	}

	if b := r.batches.FindByID(code); b != nil {
		return Resolution{Batch: b}
	}

	return Resolution{}
}
