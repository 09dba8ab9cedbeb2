package boltdb

import (
	"github.com/hashicorp/go-hclog"
	bolt "go.etcd.io/bbolt"

	"github.com/0xPolygon/edge-modules/storage"
)

// Factory creates a boltdb storage
func Factory(config *storage.Config, logger hclog.Logger) (storage.Storage, error) {
	return newBoltDBStorage(config.Path, config.CredentialCacheSize, logger)
}

// NewBoltDBStorage creates the new storage reference with boltdb
func NewBoltDBStorage(path string, logger hclog.Logger) (storage.Storage, error) {
	return newBoltDBStorage(path, storage.DefaultCredentialCacheSize, logger)
}

func newBoltDBStorage(path string, cacheSize int, logger hclog.Logger) (storage.Storage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{})
	if err != nil {
		return nil, err
	}

	kv := &boltDBKV{db: db}

	return storage.NewKeyValueStorageWithCache(logger.Named("boltdb"), kv, cacheSize), nil
}

// boltDBKV is the boltdb implementation of the kv storage
type boltDBKV struct {
	db *bolt.DB
}

var bucket = []byte{'b'}

func (l *boltDBKV) Set(p []byte, v []byte) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}

		return b.Put(p, v)
	})
}

func (l *boltDBKV) Get(p []byte) ([]byte, bool, error) {
	var (
		data  []byte
		found bool
	)

	err := l.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}

		if v := b.Get(p); v != nil {
			// v is only valid for the lifetime of the tx, therefore copying
			data = make([]byte, len(v))
			copy(data, v)
			found = true
		}

		return nil
	})

	return data, found, err
}

func (l *boltDBKV) Delete(p []byte) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}

		return b.Delete(p)
	})
}

func (l *boltDBKV) Close() error {
	return l.db.Close()
}
