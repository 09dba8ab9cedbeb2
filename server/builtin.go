package server

import (
	"github.com/0xPolygon/edge-modules/storage"
	"github.com/0xPolygon/edge-modules/storage/boltdb"
	"github.com/0xPolygon/edge-modules/storage/leveldb"
	"github.com/0xPolygon/edge-modules/storage/memory"
)

type StorageType string

const (
	MemoryStorage  StorageType = "memory"
	LevelDBStorage StorageType = "leveldb"
	BoltDBStorage  StorageType = "boltdb"
)

var storageBackends = map[StorageType]storage.Factory{
	MemoryStorage:  memory.Factory,
	LevelDBStorage: leveldb.Factory,
	BoltDBStorage:  boltdb.Factory,
}

func StorageSupported(value string) bool {
	_, ok := storageBackends[StorageType(value)]

	return ok
}
