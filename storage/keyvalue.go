package storage

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru"
	"github.com/umbracle/fastrlp"

	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/types"
)

// prefix

var (
	// CREDENTIAL is the prefix for the credential bindings
	CREDENTIAL = []byte("c")

	// PLAN is the prefix for the plans
	PLAN = []byte("p")

	// COUNTER is the prefix for the id counters
	COUNTER = []byte("n")

	// STATE is the prefix for the account storage slots
	STATE = []byte("s")
)

// sub-prefix

var (
	PLANS = []byte("plans")
)

// DefaultCredentialCacheSize is the default number of cached credential reads
const DefaultCredentialCacheSize = 1024

// KV is a key value storage interface
type KV interface {
	Close() error
	Set(p []byte, v []byte) error
	Get(p []byte) ([]byte, bool, error)
	Delete(p []byte) error
}

// KeyValueStorage is a generic storage for kv databases
type KeyValueStorage struct {
	logger hclog.Logger
	db     KV

	credentials *lru.Cache
}

func NewKeyValueStorage(logger hclog.Logger, db KV) Storage {
	return NewKeyValueStorageWithCache(logger, db, DefaultCredentialCacheSize)
}

// NewKeyValueStorageWithCache creates a storage with a credential cache of the given size.
// A size of zero disables the cache
func NewKeyValueStorageWithCache(logger hclog.Logger, db KV, cacheSize int) Storage {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	s := &KeyValueStorage{
		logger: logger.Named("storage"),
		db:     db,
	}

	if cacheSize > 0 {
		// only fails on a non positive size
		s.credentials, _ = lru.New(cacheSize)
	}

	return s
}

func (s *KeyValueStorage) encodeUint(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b[:], n)

	return b[:]
}

func (s *KeyValueStorage) decodeUint(b []byte) uint64 {
	return binary.BigEndian.Uint64(b[:])
}

func credentialKey(namespaceID uint32, account types.Address) []byte {
	k := make([]byte, 4+types.AddressLength)
	binary.BigEndian.PutUint32(k[:4], namespaceID)
	copy(k[4:], account.Bytes())

	return k
}

// -- credentials --

// ReadCredential returns the key bound to (namespaceID, account) and whether
// a binding exists at all
func (s *KeyValueStorage) ReadCredential(namespaceID uint32, account types.Address) (p256.PublicKey, bool, error) {
	k := credentialKey(namespaceID, account)

	if s.credentials != nil {
		if v, ok := s.credentials.Get(string(k)); ok {
			key, _ := v.(p256.PublicKey)

			return p256.NewPublicKey(key.X, key.Y), true, nil
		}
	}

	data, ok, err := s.db.Get(dbKey(CREDENTIAL, k))
	if err != nil {
		return p256.PublicKey{}, false, err
	}

	if !ok {
		return p256.PublicKey{}, false, nil
	}

	key, err := decodeCredential(data)
	if err != nil {
		return p256.PublicKey{}, false, fmt.Errorf("credential %d/%s: %w", namespaceID, account, err)
	}

	if s.credentials != nil {
		s.credentials.Add(string(k), p256.NewPublicKey(key.X, key.Y))
	}

	return key, true, nil
}

// WriteCredential binds key to (namespaceID, account)
func (s *KeyValueStorage) WriteCredential(namespaceID uint32, account types.Address, key p256.PublicKey) error {
	k := credentialKey(namespaceID, account)
	key = p256.NewPublicKey(key.X, key.Y)

	if err := s.set(CREDENTIAL, k, encodeCredential(key)); err != nil {
		return err
	}

	if s.credentials != nil {
		s.credentials.Add(string(k), key)
	}

	return nil
}

// DeleteCredential removes the binding of (namespaceID, account)
func (s *KeyValueStorage) DeleteCredential(namespaceID uint32, account types.Address) error {
	k := credentialKey(namespaceID, account)

	if s.credentials != nil {
		s.credentials.Remove(string(k))
	}

	return s.db.Delete(dbKey(CREDENTIAL, k))
}

func encodeCredential(key p256.PublicKey) []byte {
	ar := fastrlp.DefaultArenaPool.Get()
	defer fastrlp.DefaultArenaPool.Put(ar)

	vv := ar.NewArray()
	vv.Set(ar.NewBigInt(key.X))
	vv.Set(ar.NewBigInt(key.Y))

	return vv.MarshalTo(nil)
}

func decodeCredential(data []byte) (p256.PublicKey, error) {
	p := fastrlp.DefaultParserPool.Get()
	defer fastrlp.DefaultParserPool.Put(p)

	v, err := p.Parse(data)
	if err != nil {
		return p256.PublicKey{}, err
	}

	elems, err := v.GetElems()
	if err != nil {
		return p256.PublicKey{}, err
	}

	if len(elems) != 2 {
		return p256.PublicKey{}, fmt.Errorf("incorrect number of elements to decode credential, expected 2 but found %d", len(elems))
	}

	key := p256.PublicKey{}
	key.X, key.Y = new(big.Int), new(big.Int)

	if err := elems[0].GetBigInt(key.X); err != nil {
		return p256.PublicKey{}, err
	}

	if err := elems[1].GetBigInt(key.Y); err != nil {
		return p256.PublicKey{}, err
	}

	return key, nil
}

// -- plans --

// ReadPlan reads a plan by its id
func (s *KeyValueStorage) ReadPlan(id uint64) (*types.Plan, bool, error) {
	data, ok, err := s.db.Get(dbKey(PLAN, s.encodeUint(id)))
	if err != nil || !ok {
		return nil, false, err
	}

	plan := &types.Plan{}
	if err := plan.UnmarshalRLP(data); err != nil {
		return nil, false, fmt.Errorf("plan %d: %w", id, err)
	}

	return plan, true, nil
}

// WritePlan writes the plan under its id
func (s *KeyValueStorage) WritePlan(plan *types.Plan) error {
	return s.set(PLAN, s.encodeUint(plan.ID), plan.MarshalRLP())
}

// ReadPlanCounter returns the last allocated plan id
func (s *KeyValueStorage) ReadPlanCounter() (uint64, error) {
	data, ok, err := s.db.Get(dbKey(COUNTER, PLANS))
	if err != nil || !ok {
		return 0, err
	}

	if len(data) != 8 {
		return 0, fmt.Errorf("plan counter has %d bytes", len(data))
	}

	return s.decodeUint(data), nil
}

// WritePlanCounter writes the last allocated plan id
func (s *KeyValueStorage) WritePlanCounter(n uint64) error {
	return s.set(COUNTER, PLANS, s.encodeUint(n))
}

// -- state --

// GetStorage reads the slot key of addr. Missing slots read as zero
func (s *KeyValueStorage) GetStorage(addr types.Address, key types.Hash) types.Hash {
	data, ok, err := s.db.Get(stateKey(addr, key))
	if err != nil {
		s.logger.Error("failed to read state", "addr", addr, "key", key, "err", err)

		return types.ZeroHash
	}

	if !ok {
		return types.ZeroHash
	}

	return types.BytesToHash(data)
}

// SetState writes the slot key of addr. Zero values clear the slot
func (s *KeyValueStorage) SetState(addr types.Address, key, value types.Hash) {
	var err error

	if value == types.ZeroHash {
		err = s.db.Delete(stateKey(addr, key))
	} else {
		err = s.db.Set(stateKey(addr, key), value.Bytes())
	}

	if err != nil {
		s.logger.Error("failed to write state", "addr", addr, "key", key, "err", err)
	}
}

func stateKey(addr types.Address, key types.Hash) []byte {
	return dbKey(STATE, append(addr.Bytes(), key.Bytes()...))
}

// dbKey joins prefix and key into a fresh slice, the prefixes are shared
func dbKey(prefix []byte, key []byte) []byte {
	k := make([]byte, 0, len(prefix)+len(key))
	k = append(k, prefix...)

	return append(k, key...)
}

// Prefix, Key, Value
func (s *KeyValueStorage) set(prefix []byte, key []byte, value []byte) error {
	return s.db.Set(dbKey(prefix, key), value)
}

// Close closes the connection with the db
func (s *KeyValueStorage) Close() error {
	return s.db.Close()
}
