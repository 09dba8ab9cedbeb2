package addresslist

import (
	"errors"

	"github.com/umbracle/ethgo/abi"

	"github.com/0xPolygon/edge-modules/state/runtime"
	"github.com/0xPolygon/edge-modules/types"
)

var (
	// is list enabled or not key hash
	enabledKeyHash = types.StringToHash("ffffffffffffffffffffffffffffffffffffffff")
)

var (
	ErrAdminSelfRemove = errors.New("cannot remove admin role from caller")
	ErrAdminTarget     = errors.New("admin addresses cannot be listed or unlisted")
)

// AddressList is a role table kept in the storage slots of a single address.
// While the list is enabled, only admins can change the roles of others.
type AddressList struct {
	state stateRef
	addr  types.Address
}

func NewAddressList(state stateRef, addr types.Address) *AddressList {
	return &AddressList{state: state, addr: addr}
}

func (a *AddressList) Addr() types.Address {
	return a.addr
}

// Authorize checks that caller may change the listed roles
func (a *AddressList) Authorize(caller types.Address) error {
	if !a.IsEnabled() {
		return nil
	}

	if a.GetRole(caller) != AdminRole {
		return runtime.ErrNotAuth
	}

	return nil
}

// UpdateRole sets the role of target on behalf of caller
func (a *AddressList) UpdateRole(caller, target types.Address, role Role) error {
	if err := a.Authorize(caller); err != nil {
		return err
	}

	current := a.GetRole(target)
	if current == AdminRole {
		if caller == target {
			return ErrAdminSelfRemove
		}

		if role != AdminRole {
			return ErrAdminTarget
		}
	}

	a.SetRole(target, role)

	return nil
}

func (a *AddressList) SetRole(addr types.Address, role Role) {
	a.state.SetState(a.addr, types.BytesToHash(addr.Bytes()), types.Hash(role))
}

func (a *AddressList) GetRole(addr types.Address) Role {
	res := a.state.GetStorage(a.addr, types.BytesToHash(addr.Bytes()))

	return Role(res)
}

func (a *AddressList) IsEnabled() bool {
	return a.state.GetStorage(a.addr, enabledKeyHash) != types.ZeroHash
}

func (a *AddressList) SetEnabled(value bool) {
	stateValue := types.BytesToHash(getAbiBoolValue(value))

	a.state.SetState(a.addr, enabledKeyHash, stateValue)
}

type Role types.Hash

var (
	NoRole      = Role(types.ZeroHash)
	EnabledRole = Role(types.BytesToHash([]byte{1}))
	AdminRole   = Role(types.BytesToHash([]byte{2}))
)

func (r Role) Uint64() uint64 {
	switch r {
	case EnabledRole:
		return 1
	case AdminRole:
		return 2
	default:
		return 0
	}
}

func (r Role) String() string {
	switch r {
	case EnabledRole:
		return "enabled"
	case AdminRole:
		return "admin"
	default:
		return "none"
	}
}

func (r Role) Bytes() []byte {
	return types.Hash(r).Bytes()
}

func (r Role) Enabled() bool {
	return r == AdminRole || r == EnabledRole
}

type stateRef interface {
	SetState(addr types.Address, key, value types.Hash)
	GetStorage(addr types.Address, key types.Hash) types.Hash
}

func getAbiBoolValue(value bool) []byte {
	encodedValue, _ := abi.MustNewType("bool").Encode(value)

	return encodedValue
}
