package leveldb

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/0xPolygon/edge-modules/storage"
)

const (
	// minimum cache size in MB
	minCache = 16

	// minimum number of open file handles
	minHandles = 16
)

// Factory creates a leveldb storage
func Factory(config *storage.Config, logger hclog.Logger) (storage.Storage, error) {
	return newLevelDBStorage(config.Path, config.CredentialCacheSize, logger)
}

// NewLevelDBStorage creates the new storage reference with leveldb
func NewLevelDBStorage(path string, logger hclog.Logger) (storage.Storage, error) {
	return newLevelDBStorage(path, storage.DefaultCredentialCacheSize, logger)
}

func newLevelDBStorage(path string, cacheSize int, logger hclog.Logger) (storage.Storage, error) {
	options := &opt.Options{
		OpenFilesCacheCapacity: minHandles,
		BlockCacheCapacity:     minCache / 2 * opt.MiB,
		WriteBuffer:            minCache / 4 * opt.MiB,
	}

	db, err := leveldb.OpenFile(path, options)
	if err != nil {
		return nil, err
	}

	kv := &levelDBKV{db: db}

	return storage.NewKeyValueStorageWithCache(logger.Named("leveldb"), kv, cacheSize), nil
}

// levelDBKV is the leveldb implementation of the kv storage
type levelDBKV struct {
	db *leveldb.DB
}

// Set sets the key-value pair in leveldb storage
func (l *levelDBKV) Set(p []byte, v []byte) error {
	return l.db.Put(p, v, nil)
}

// Get retrieves the key-value pair in leveldb storage
func (l *levelDBKV) Get(p []byte) ([]byte, bool, error) {
	data, err := l.db.Get(p, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return data, true, nil
}

// Delete removes the key from leveldb storage
func (l *levelDBKV) Delete(p []byte) error {
	return l.db.Delete(p, nil)
}

// Close closes the leveldb storage instance
func (l *levelDBKV) Close() error {
	return l.db.Close()
}
