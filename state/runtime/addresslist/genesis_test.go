package addresslist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/edge-modules/chain"
	"github.com/0xPolygon/edge-modules/types"
)

func TestApplyAllocs(t *testing.T) {
	t.Parallel()

	one := types.Address{0x1}
	two := types.Address{0x2}
	three := types.Address{0x3}

	// without admins the list stays open
	state := newMockState()
	ApplyAllocs(state, types.Address{}, &chain.AddressListConfig{
		EnabledAddresses: []types.Address{two, three},
	})

	require.Equal(t, map[types.Hash]types.Hash{
		types.BytesToHash(two.Bytes()):   types.Hash(EnabledRole),
		types.BytesToHash(three.Bytes()): types.Hash(EnabledRole),
	}, state.state)

	// with admins
	state = newMockState()
	ApplyAllocs(state, types.Address{}, &chain.AddressListConfig{
		AdminAddresses:   []types.Address{one},
		EnabledAddresses: []types.Address{two, three},
	})

	require.Equal(t, map[types.Hash]types.Hash{
		types.StringToHash("ffffffffffffffffffffffffffffffffffffffff"): types.StringToHash("1"),
		types.BytesToHash(one.Bytes()):                                 types.Hash(AdminRole),
		types.BytesToHash(two.Bytes()):                                 types.Hash(EnabledRole),
		types.BytesToHash(three.Bytes()):                               types.Hash(EnabledRole),
	}, state.state)

	// nil config is a no-op
	state = newMockState()
	ApplyAllocs(state, types.Address{}, nil)
	require.Empty(t, state.state)
}
