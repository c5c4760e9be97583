package storage

import (
	"context"
	"strings"
	"sync"
)

type memoryStorage struct {
	lock sync.RWMutex
	data map[string][]byte
}

// NewMemoryStorage initializes an in-memory System, useful for tests and
// throwaway analysis sessions.
func NewMemoryStorage() *memoryStorage {
	return &memoryStorage{data: make(map[string][]byte)}
}

func (m *memoryStorage) GetKeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	ret := []string{}
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			ret = append(ret, k)
		}
	}

	return ret, nil
}

func (m *memoryStorage) Write(ctx context.Context, key string, data []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[key] = stored

	return nil
}

func (m *memoryStorage) Read(ctx context.Context, key string) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, ErrDoesNotExist
	}

	return data, nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	delete(m.data, key)

	return nil
}
