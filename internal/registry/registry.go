// Package registry реализует реестр покупателей: учёт участников цепочки
// поставок с дедупликацией по номеру телефона.
package registry

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/agroveda/agroveda-system/internal/memberid"
	"github.com/agroveda/agroveda-system/internal/model"
)

// Store описывает контракт хранения коллекции покупателей, используемый реестром.
type Store interface {
	Load() ([]model.Customer, error)
	Save(customers []model.Customer) error
}

// Faults содержит счётчики сбоев хранилища, поглощённых реестром.
type Faults struct {
	Reads  uint64
	Writes uint64
}

// Registry владеет коллекцией покупателей. Сбои хранилища не доходят до
// вызывающего: неудачное чтение даёт пустую коллекцию, неудачная запись
// молча теряет обновление. Оба случая логируются и считаются.
type Registry struct {
	mu     sync.Mutex
	store  Store
	ids    *memberid.Generator
	logger *zap.Logger
	now    func() time.Time

	readFaults  atomic.Uint64
	writeFaults atomic.Uint64
}

// New создаёт реестр поверх указанного хранилища.
func New(store Store, ids *memberid.Generator, logger *zap.Logger) *Registry {
	return &Registry{
		store:  store,
		ids:    ids,
		logger: logger,
		now:    time.Now,
	}
}

// FindByPhone возвращает покупателя с указанным телефоном или nil, если его
// нет. Пустой после обрезки пробелов телефон не ищется вовсе.
func (r *Registry) FindByPhone(phone string) *model.Customer {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	customers := r.load()
	return findByPhone(customers, phone)
}

// FindByMemberID возвращает покупателя с указанным членским идентификатором
// или nil. Поддерживает контракт поиска по коду для границы сканирования.
func (r *Registry) FindByMemberID(id string) *model.Customer {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	customers := r.load()
	for i := range customers {
		if customers[i].MemberID == id {
			return &customers[i]
		}
	}
	return nil
}

// Create регистрирует покупателя. Повторный вызов с уже известным телефоном
// идемпотентен: возвращается существующая запись без изменений, переданные
// имя и почта игнорируются.
func (r *Registry) Create(phone, name, email string) model.Customer {
	phone = strings.TrimSpace(phone)

	r.mu.Lock()
	defer r.mu.Unlock()

	customers := r.load()
	if existing := findByPhone(customers, phone); existing != nil {
		return *existing
	}

	customer := model.Customer{
		Phone:     phone,
		MemberID:  r.ids.Derive(phone),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		CreatedAt: r.now(),
	}

	customers = append(customers, customer)
	r.save(customers)

	return customer
}

// ListAll возвращает коллекцию покупателей в порядке регистрации.
func (r *Registry) ListAll() []model.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// Faults возвращает накопленные счётчики поглощённых сбоев хранилища.
func (r *Registry) Faults() Faults {
	return Faults{
		Reads:  r.readFaults.Load(),
		Writes: r.writeFaults.Load(),
	}
}

func (r *Registry) load() []model.Customer {
	customers, err := r.store.Load()
	if err != nil {
		r.readFaults.Add(1)
		r.logger.Warn("customer store read fault, degrading to empty collection", zap.Error(err))
		return nil
	}
	return customers
}

func (r *Registry) save(customers []model.Customer) {
	if err := r.store.Save(customers); err != nil {
		r.writeFaults.Add(1)
		r.logger.Warn("customer store write fault, update dropped", zap.Error(err))
	}
}

func findByPhone(customers []model.Customer, phone string) *model.Customer {
	for i := range customers {
		if customers[i].Phone == phone {
			return &customers[i]
		}
	}
	return nil
}
