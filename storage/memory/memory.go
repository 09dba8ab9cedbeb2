package memory

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/edge-modules/helper/hex"
	"github.com/0xPolygon/edge-modules/storage"
)

// NewMemoryStorage creates the new storage reference with inmemory
func NewMemoryStorage(logger hclog.Logger) (storage.Storage, error) {
	return newMemoryStorage(storage.DefaultCredentialCacheSize, logger), nil
}

// Factory creates an in memory storage, the path is ignored
func Factory(config *storage.Config, logger hclog.Logger) (storage.Storage, error) {
	return newMemoryStorage(config.CredentialCacheSize, logger), nil
}

func newMemoryStorage(cacheSize int, logger hclog.Logger) storage.Storage {
	db := &memoryKV{db: map[string][]byte{}}

	return storage.NewKeyValueStorageWithCache(logger, db, cacheSize)
}

// memoryKV is an in memory implementation of the kv storage
type memoryKV struct {
	lock sync.RWMutex
	db   map[string][]byte
}

func (m *memoryKV) Set(p []byte, v []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.db[hex.EncodeToHex(p)] = append([]byte{}, v...)

	return nil
}

func (m *memoryKV) Get(p []byte) ([]byte, bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	v, ok := m.db[hex.EncodeToHex(p)]
	if !ok {
		return nil, false, nil
	}

	return append([]byte{}, v...), true, nil
}

func (m *memoryKV) Delete(p []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	delete(m.db, hex.EncodeToHex(p))

	return nil
}

func (m *memoryKV) Close() error {
	return nil
}
