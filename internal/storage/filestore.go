// Package storage содержит реализацию локального файлового хранилища коллекций.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Ключи коллекций. Каждая коллекция сериализуется целиком в собственный файл.
const (
	KeyCustomers = "customers"
	KeyBatches   = "batches"
)

// ErrNotFound возвращается, если коллекция ещё ни разу не сохранялась.
// Это не сбой хранилища: отсутствие файла означает пустую коллекцию.
var ErrNotFound = errors.New("collection not found")

// FileStore хранит коллекции в JSON-файлах внутри каталога данных.
// Каждая коллекция пишется целиком (read-modify-write); мьютекс сериализует
// циклы чтение-изменение-запись, чтобы параллельные вызовы не теряли
// обновления друг друга.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore создаёт хранилище в указанном каталоге, создавая его при
// необходимости.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Load читает сериализованную коллекцию по ключу.
func (s *FileStore) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read collection %s: %w", key, err)
	}
	return data, nil
}

// Save атомарно записывает сериализованную коллекцию по ключу: сначала во
// временный файл, затем rename, чтобы сбой записи не повредил прежний снимок.
func (s *FileStore) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write collection %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync collection %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace collection %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// LoadJSON читает коллекцию по ключу и декодирует её в out.
// Отсутствующая коллекция возвращает ErrNotFound, повреждённая — ошибку
// декодирования; различать их — забота вызывающего.
func LoadJSON(s *FileStore, key string, out any) error {
	data, err := s.Load(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode collection %s: %w", key, err)
	}
	return nil
}

// SaveJSON кодирует коллекцию в JSON и сохраняет её по ключу.
func SaveJSON(s *FileStore, key string, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}
	return s.Save(key, data)
}
