package storage

import (
	"errors"

	"github.com/agroveda/agroveda-system/internal/model"
)

// CustomerStore сохраняет и восстанавливает коллекцию покупателей целиком.
type CustomerStore struct {
	fs *FileStore
}

// NewCustomerStore создаёт типизированное хранилище коллекции покупателей.
func NewCustomerStore(fs *FileStore) *CustomerStore {
	return &CustomerStore{fs: fs}
}

// Load возвращает коллекцию в порядке сохранения. Ещё не сохранявшаяся
// коллекция читается как пустая, это не сбой хранилища.
func (s *CustomerStore) Load() ([]model.Customer, error) {
	var customers []model.Customer
	if err := LoadJSON(s.fs, KeyCustomers, &customers); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return customers, nil
}

// Save сохраняет коллекцию целиком.
func (s *CustomerStore) Save(customers []model.Customer) error {
	return SaveJSON(s.fs, KeyCustomers, customers)
}

// BatchStore сохраняет и восстанавливает коллекцию партий целиком.
type BatchStore struct {
	fs *FileStore
}

// NewBatchStore создаёт типизированное хранилище коллекции партий.
func NewBatchStore(fs *FileStore) *BatchStore {
	return &BatchStore{fs: fs}
}

// Load возвращает коллекцию в порядке сохранения. Ещё не сохранявшаяся
// коллекция читается как пустая.
func (s *BatchStore) Load() ([]model.Batch, error) {
	var batches []model.Batch
	if err := LoadJSON(s.fs, KeyBatches, &batches); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return batches, nil
}

// Save сохраняет коллекцию целиком.
func (s *BatchStore) Save(batches []model.Batch) error {
	return SaveJSON(s.fs, KeyBatches, batches)
}
