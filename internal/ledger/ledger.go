// Package ledger реализует журнал партий продукции: статусы этапов и учёт
// остатков.
package ledger

import (
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/agroveda/agroveda-system/internal/model"
)

// Store описывает контракт хранения коллекции партий, используемый журналом.
type Store interface {
	Load() ([]model.Batch, error)
	Save(batches []model.Batch) error
}

// Faults содержит счётчики сбоев хранилища, поглощённых журналом.
type Faults struct {
	Reads  uint64
	Writes uint64
}

// Ledger владеет коллекцией партий. Мутации с неизвестным идентификатором —
// тихий no-op, канала ошибки для них нет. Переход между статусами не
// ограничен: журнал принимает любой из пяти этапов в любом порядке, порядок
// переходов — забота вызывающей стороны (см. model.StatusOrder).
type Ledger struct {
	mu     sync.Mutex
	store  Store
	logger *zap.Logger

	readFaults  atomic.Uint64
	writeFaults atomic.Uint64
}

// New создаёт журнал поверх указанного хранилища.
func New(store Store, logger *zap.Logger) *Ledger {
	return &Ledger{
		store:  store,
		logger: logger,
	}
}

// Add добавляет полностью сформированную партию в конец коллекции.
// Уникальность идентификатора журнал не проверяет — её обеспечивает
// вызывающая сторона.
func (l *Ledger) Add(batch model.Batch) {
	l.mu.Lock()
	defer l.mu.Unlock()

	batches := l.load()
	batches = append(batches, batch)
	l.save(batches)
}

// SetStatus заменяет статус партии и, если передано непустое значение,
// её местоположение. Остальные поля не трогаются. Неизвестный идентификатор —
// no-op.
func (l *Ledger) SetStatus(id string, status model.BatchStatus, location string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	batches := l.load()
	i := indexByID(batches, id)
	if i < 0 {
		return
	}

	batches[i].Status = status
	if location != "" {
		batches[i].Location = location
	}
	l.save(batches)
}

// Consume списывает amount из остатка партии. Остаток не уходит ниже нуля:
// списание большего, чем осталось, обнуляет остаток, это не ошибка.
// Отрицательный amount трактуется как ноль. Неизвестный идентификатор — no-op.
func (l *Ledger) Consume(id string, amount decimal.Decimal) {
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	batches := l.load()
	i := indexByID(batches, id)
	if i < 0 {
		return
	}

	remaining := batches[i].Quantity.Sub(amount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	batches[i].Quantity = remaining
	l.save(batches)
}

// FindByID возвращает партию с указанным идентификатором или nil.
func (l *Ledger) FindByID(id string) *model.Batch {
	l.mu.Lock()
	defer l.mu.Unlock()

	batches := l.load()
	if i := indexByID(batches, id); i >= 0 {
		b := batches[i]
		return &b
	}
	return nil
}

// ListAll возвращает коллекцию партий в порядке добавления.
func (l *Ledger) ListAll() []model.Batch {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.load()
}

// Faults возвращает накопленные счётчики поглощённых сбоев хранилища.
func (l *Ledger) Faults() Faults {
	return Faults{
		Reads:  l.readFaults.Load(),
		Writes: l.writeFaults.Load(),
	}
}

func (l *Ledger) load() []model.Batch {
	batches, err := l.store.Load()
	if err != nil {
		l.readFaults.Add(1)
		l.logger.Warn("batch store read fault, degrading to empty collection", zap.Error(err))
		return nil
	}
	return batches
}

func (l *Ledger) save(batches []model.Batch) {
	if err := l.store.Save(batches); err != nil {
		l.writeFaults.Add(1)
		l.logger.Warn("batch store write fault, update dropped", zap.Error(err))
	}
}

func indexByID(batches []model.Batch, id string) int {
	for i := range batches {
		if batches[i].ID == id {
			return i
		}
	}
	return -1
}
