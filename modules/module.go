package modules

import (
	"math/big"

	"github.com/0xPolygon/edge-modules/helper/hex"
	"github.com/0xPolygon/edge-modules/helper/keccak"
	"github.com/0xPolygon/edge-modules/types"
)

// module type ids of the account framework
const (
	TypeValidator uint64 = 1
	TypeExecutor  uint64 = 2
)

// InterfaceID is an ERC-165 interface identifier
type InterfaceID [4]byte

var (
	// ERC165InterfaceID is the id of supportsInterface(bytes4) itself
	ERC165InterfaceID = InterfaceIDOf("supportsInterface(bytes4)")

	// ModuleInterfaceID is the generic module capability every module builds on
	ModuleInterfaceID = InterfaceIDOf(
		"onInstall(bytes)",
		"onUninstall(bytes)",
		"isModuleType(uint256)",
		"isInitialized(address)",
	)

	// InvalidInterfaceID must never be reported as supported
	InvalidInterfaceID = InterfaceID{0xff, 0xff, 0xff, 0xff}
)

func (id InterfaceID) Bytes() []byte {
	return id[:]
}

func (id InterfaceID) String() string {
	return hex.EncodeToHex(id[:])
}

// Selector returns the first four bytes of the keccak hash of a canonical signature
func Selector(signature string) InterfaceID {
	var id InterfaceID

	copy(id[:], keccak.Keccak256(nil, []byte(signature)))

	return id
}

// InterfaceIDOf xors the selectors of the given functions
func InterfaceIDOf(signatures ...string) InterfaceID {
	var id InterfaceID

	for _, sig := range signatures {
		sel := Selector(sig)
		for i := range id {
			id[i] ^= sel[i]
		}
	}

	return id
}

// EventSink receives the logs emitted by the modules
type EventSink interface {
	EmitLog(log *types.Log)
}

// Module is the surface the account framework uses to discover and
// install a module
type Module interface {
	Name() string
	Version() string
	IsModuleType(typeID *big.Int) bool
	SupportsInterface(id InterfaceID) bool
	OnInstall(account types.Address, data []byte) error
	OnUninstall(account types.Address, data []byte) error
	IsInitialized(account types.Address) bool
}

// Supports answers an ERC-165 query for a module with the given native interfaces
func Supports(id InterfaceID, native ...InterfaceID) bool {
	if id == InvalidInterfaceID {
		return false
	}

	if id == ERC165InterfaceID || id == ModuleInterfaceID {
		return true
	}

	for _, n := range native {
		if id == n {
			return true
		}
	}

	return false
}

// IsType reports whether typeID equals want
func IsType(typeID *big.Int, want uint64) bool {
	return typeID != nil && typeID.IsUint64() && typeID.Uint64() == want
}
