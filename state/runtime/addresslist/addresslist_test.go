package addresslist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/edge-modules/state/runtime"
	"github.com/0xPolygon/edge-modules/types"
)

type mockState struct {
	state map[types.Hash]types.Hash
}

func newMockState() *mockState {
	return &mockState{
		state: map[types.Hash]types.Hash{},
	}
}

func (m *mockState) SetState(addr types.Address, key, value types.Hash) {
	m.state[key] = value
}

func (m *mockState) GetStorage(addr types.Address, key types.Hash) types.Hash {
	return m.state[key]
}

func newMockAddressList() *AddressList {
	return NewAddressList(newMockState(), types.Address{})
}

func TestAddressList_Disabled_AnyoneCanUpdate(t *testing.T) {
	t.Parallel()

	a := newMockAddressList()
	target := types.Address{0x1}

	require.False(t, a.IsEnabled())
	require.NoError(t, a.Authorize(types.Address{0x9}))

	require.NoError(t, a.UpdateRole(types.Address{0x9}, target, EnabledRole))
	require.Equal(t, EnabledRole, a.GetRole(target))

	require.NoError(t, a.UpdateRole(types.Address{0x9}, target, NoRole))
	require.Equal(t, NoRole, a.GetRole(target))
}

func TestAddressList_Enabled_OnlyAdminCanUpdate(t *testing.T) {
	t.Parallel()

	admin := types.Address{0xa}
	target := types.Address{0x1}

	a := newMockAddressList()
	a.SetRole(admin, AdminRole)
	a.SetEnabled(true)

	require.ErrorIs(t, a.UpdateRole(types.Address{0x9}, target, EnabledRole), runtime.ErrNotAuth)
	require.Equal(t, NoRole, a.GetRole(target))

	// enabled members are not admins
	a.SetRole(types.Address{0x9}, EnabledRole)
	require.ErrorIs(t, a.Authorize(types.Address{0x9}), runtime.ErrNotAuth)

	require.NoError(t, a.UpdateRole(admin, target, EnabledRole))
	require.Equal(t, EnabledRole, a.GetRole(target))
}

func TestAddressList_AdminProtection(t *testing.T) {
	t.Parallel()

	admin := types.Address{0xa}
	other := types.Address{0xb}

	a := newMockAddressList()
	a.SetRole(admin, AdminRole)
	a.SetRole(other, AdminRole)
	a.SetEnabled(true)

	require.ErrorIs(t, a.UpdateRole(admin, admin, NoRole), ErrAdminSelfRemove)
	require.ErrorIs(t, a.UpdateRole(admin, other, EnabledRole), ErrAdminTarget)
	require.Equal(t, AdminRole, a.GetRole(other))
}

func TestAddressList_SetEnabled(t *testing.T) {
	t.Parallel()

	a := newMockAddressList()

	a.SetEnabled(true)
	require.True(t, a.IsEnabled())

	a.SetEnabled(false)
	require.False(t, a.IsEnabled())
}

func TestRole_ToUint(t *testing.T) {
	t.Parallel()

	cases := []struct {
		role Role
		num  uint64
		str  string
	}{
		{AdminRole, uint64(2), "admin"},
		{EnabledRole, uint64(1), "enabled"},
		{NoRole, uint64(0), "none"},
	}

	for _, c := range cases {
		require.Equal(t, c.num, c.role.Uint64())
		require.Equal(t, c.str, c.role.String())
	}
}

func TestRole_Enabled(t *testing.T) {
	t.Parallel()

	cases := []struct {
		role    Role
		enabled bool
	}{
		{AdminRole, true},
		{EnabledRole, true},
		{NoRole, false},
	}

	for _, c := range cases {
		require.Equal(t, c.enabled, c.role.Enabled())
	}
}
