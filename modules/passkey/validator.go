package passkey

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/armon/go-metrics"
	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/modules"
	"github.com/0xPolygon/edge-modules/types"
	"github.com/0xPolygon/edge-modules/verifier"
)

const (
	ModuleName    = "PasskeyValidator"
	ModuleVersion = "1.0.0"

	// passkeyMetrics is a prefix used for credential registry metrics
	passkeyMetrics = "passkey"
)

var (
	// MagicValue is the ERC-1271 answer for an accepted signature
	MagicValue = [4]byte{0x16, 0x26, 0xba, 0x7e}

	// InvalidSignature is the ERC-1271 answer for a rejected signature
	InvalidSignature = [4]byte{0xff, 0xff, 0xff, 0xff}
)

// user operation validation results
const (
	ValidationSuccess uint64 = 0
	ValidationFailed  uint64 = 1
)

var (
	ErrNotAuthorized      = errors.New("not authorized")
	ErrInvalidInstallData = errors.New("invalid install data")
	ErrInvalidKey         = errors.New("key coordinates do not fit 256 bits")
)

var (
	// ValidatorInterfaceID is the generic validator capability
	ValidatorInterfaceID = modules.InterfaceIDOf(
		"validateUserOp((address,uint256,bytes,bytes,bytes32,uint256,bytes32,bytes,bytes),bytes32)",
		"isValidSignatureWithSender(address,bytes32,bytes)",
	)

	// PasskeyInterfaceID is the native credential registry capability
	PasskeyInterfaceID = modules.InterfaceIDOf(
		"install(uint32,uint256,uint256)",
		"transfer(uint32,uint256,uint256)",
		"uninstall(uint32)",
		"credential(uint32,address)",
		"validateSignature(address,uint32,bytes32,bytes)",
		"validateDirectCall(address,uint32,address,uint256,bytes)",
	)
)

type credentialStore interface {
	ReadCredential(namespaceID uint32, account types.Address) (p256.PublicKey, bool, error)
	WriteCredential(namespaceID uint32, account types.Address, key p256.PublicKey) error
	DeleteCredential(namespaceID uint32, account types.Address) error
}

type stateRef interface {
	SetState(addr types.Address, key, value types.Hash)
	GetStorage(addr types.Address, key types.Hash) types.Hash
}

// Store is the persistence the validator needs
type Store interface {
	credentialStore
	stateRef
}

// Validator binds one passkey per (namespace, account) and authenticates
// signatures against it.
//
// Every mutating method takes the invoking account as its first argument and
// only ever touches that account's bindings.
type Validator struct {
	logger hclog.Logger
	addr   types.Address

	store    Store
	verifier *verifier.Verifier
	events   modules.EventSink

	lock sync.Mutex
}

var _ modules.Module = (*Validator)(nil)

// NewValidator creates the credential registry running at addr
func NewValidator(
	logger hclog.Logger,
	addr types.Address,
	store Store,
	verifier *verifier.Verifier,
	events modules.EventSink,
) *Validator {
	return &Validator{
		logger:   logger.Named("passkey"),
		addr:     addr,
		store:    store,
		verifier: verifier,
		events:   events,
	}
}

func (v *Validator) Addr() types.Address {
	return v.addr
}

func (v *Validator) Name() string {
	return ModuleName
}

func (v *Validator) Version() string {
	return ModuleVersion
}

func (v *Validator) IsModuleType(typeID *big.Int) bool {
	return modules.IsType(typeID, modules.TypeValidator)
}

func (v *Validator) SupportsInterface(id modules.InterfaceID) bool {
	return modules.Supports(id, ValidatorInterfaceID, PasskeyInterfaceID)
}

// OnInstall binds the key carried by the abi encoded (namespaceId, x, y) payload
func (v *Validator) OnInstall(account types.Address, data []byte) error {
	ns, key, err := DecodeInstallData(data)
	if err != nil {
		return err
	}

	return v.Install(account, ns, key)
}

// OnUninstall clears the binding of the abi encoded (namespaceId) payload
func (v *Validator) OnUninstall(account types.Address, data []byte) error {
	ns, err := DecodeUninstallData(data)
	if err != nil {
		return err
	}

	return v.Uninstall(account, ns)
}

// IsInitialized reports whether the account has at least one bound namespace
func (v *Validator) IsInitialized(account types.Address) bool {
	return v.boundCount(account) > 0
}

// Install overwrites the binding of (namespaceID, account).
// The key is not checked against the curve here, invalid points simply never verify.
func (v *Validator) Install(account types.Address, namespaceID uint32, key p256.PublicKey) error {
	return v.bind(account, namespaceID, key, "install")
}

// Transfer rebinds (namespaceID, account) to newKey
func (v *Validator) Transfer(account types.Address, namespaceID uint32, newKey p256.PublicKey) error {
	return v.bind(account, namespaceID, newKey, "transfer")
}

func (v *Validator) bind(account types.Address, namespaceID uint32, key p256.PublicKey, op string) error {
	if !key.IsEncodable() {
		return ErrInvalidKey
	}

	v.lock.Lock()
	defer v.lock.Unlock()

	old, bound, err := v.store.ReadCredential(namespaceID, account)
	if err != nil {
		return fmt.Errorf("failed to read credential: %w", err)
	}

	key = p256.NewPublicKey(key.X, key.Y)

	if err := v.store.WriteCredential(namespaceID, account, key); err != nil {
		return fmt.Errorf("failed to write credential: %w", err)
	}

	if !bound {
		v.setBoundCount(account, v.boundCount(account)+1)
	}

	if !key.IsValid() {
		v.logger.Warn("bound key is not a curve point", "account", account, "namespace", namespaceID)
	}

	v.emitRegistered(namespaceID, account, old, key)
	v.logger.Debug("credential bound", "op", op, "account", account, "namespace", namespaceID)
	metrics.IncrCounter([]string{passkeyMetrics, op}, 1)

	return nil
}

// Uninstall clears the binding of (namespaceID, account)
func (v *Validator) Uninstall(account types.Address, namespaceID uint32) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	_, bound, err := v.store.ReadCredential(namespaceID, account)
	if err != nil {
		return fmt.Errorf("failed to read credential: %w", err)
	}

	if err := v.store.DeleteCredential(namespaceID, account); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	if bound {
		if n := v.boundCount(account); n > 0 {
			v.setBoundCount(account, n-1)
		}
	}

	v.emitRemoved(namespaceID, account)
	v.logger.Debug("credential removed", "account", account, "namespace", namespaceID)
	metrics.IncrCounter([]string{passkeyMetrics, "uninstall"}, 1)

	return nil
}

// Credential returns the key bound to (namespaceID, account). Unbound pairs
// return the zero key and false.
func (v *Validator) Credential(namespaceID uint32, account types.Address) (p256.PublicKey, bool) {
	key, ok, err := v.store.ReadCredential(namespaceID, account)
	if err != nil {
		v.logger.Error("failed to read credential", "account", account, "namespace", namespaceID, "err", err)

		return p256.PublicKey{}, false
	}

	if !ok {
		return p256.PublicKey{}, false
	}

	return key, true
}

// ValidateSignature answers an ERC-1271 style query for account
func (v *Validator) ValidateSignature(
	account types.Address,
	namespaceID uint32,
	digest types.Hash,
	signature []byte,
) [4]byte {
	if !v.authenticate(account, namespaceID, digest, signature) {
		metrics.IncrCounter([]string{passkeyMetrics, "signature", "invalid"}, 1)

		return InvalidSignature
	}

	metrics.IncrCounter([]string{passkeyMetrics, "signature", "valid"}, 1)

	return MagicValue
}

// ValidateUserOp checks the signature carried by op against the credential
// of its sender. It returns ValidationSuccess or ValidationFailed.
func (v *Validator) ValidateUserOp(namespaceID uint32, op *types.UserOperation, opHash types.Hash) uint64 {
	if op == nil || !v.authenticate(op.Sender, namespaceID, opHash, op.Signature) {
		metrics.IncrCounter([]string{passkeyMetrics, "userop", "failed"}, 1)

		return ValidationFailed
	}

	metrics.IncrCounter([]string{passkeyMetrics, "userop", "success"}, 1)

	return ValidationSuccess
}

// ValidateDirectCall only lets the account itself or this module relay a call
func (v *Validator) ValidateDirectCall(
	account types.Address,
	namespaceID uint32,
	caller types.Address,
	value *big.Int,
	data []byte,
) error {
	if caller == account || caller == v.addr {
		return nil
	}

	v.logger.Debug(
		"rejected direct call",
		"account", account,
		"namespace", namespaceID,
		"caller", caller,
		"value", value,
		"data", len(data),
	)
	metrics.IncrCounter([]string{passkeyMetrics, "direct_call", "rejected"}, 1)

	return fmt.Errorf("%w: caller %s for account %s", ErrNotAuthorized, caller, account)
}

func (v *Validator) authenticate(account types.Address, namespaceID uint32, digest types.Hash, signature []byte) bool {
	key, ok := v.Credential(namespaceID, account)
	if !ok {
		v.logger.Debug("no credential bound", "account", account, "namespace", namespaceID)

		return false
	}

	return v.verifier.Verify(digest, signature, key)
}

// boundCount is kept in the module's own storage slot keyed by account
func (v *Validator) boundCount(account types.Address) uint64 {
	value := v.store.GetStorage(v.addr, types.BytesToHash(account.Bytes()))

	return binary.BigEndian.Uint64(value[types.HashLength-8:])
}

func (v *Validator) setBoundCount(account types.Address, n uint64) {
	var value types.Hash

	binary.BigEndian.PutUint64(value[types.HashLength-8:], n)
	v.store.SetState(v.addr, types.BytesToHash(account.Bytes()), value)
}
