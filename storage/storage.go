package storage

import (
	"errors"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/types"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Storage is the persistence of the module state
type Storage interface {
	ReadCredential(namespaceID uint32, account types.Address) (p256.PublicKey, bool, error)
	WriteCredential(namespaceID uint32, account types.Address, key p256.PublicKey) error
	DeleteCredential(namespaceID uint32, account types.Address) error

	ReadPlan(id uint64) (*types.Plan, bool, error)
	WritePlan(plan *types.Plan) error
	ReadPlanCounter() (uint64, error)
	WritePlanCounter(n uint64) error

	GetStorage(addr types.Address, key types.Hash) types.Hash
	SetState(addr types.Address, key, value types.Hash)

	Close() error
}

// Config are the parameters shared by the storage backends
type Config struct {
	// Path is the location of the database, ignored by in memory backends
	Path string

	// CredentialCacheSize is the number of cached credential reads, zero disables the cache
	CredentialCacheSize int
}

// Factory is a factory method to create a storage
type Factory func(config *Config, logger hclog.Logger) (Storage, error)
