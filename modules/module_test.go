package modules

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/umbracle/ethgo/abi"
)

func TestSelector(t *testing.T) {
	t.Parallel()

	// well known ids
	require.Equal(t, InterfaceID{0x01, 0xff, 0xc9, 0xa7}, ERC165InterfaceID)
	require.Equal(t, InterfaceID{0x16, 0x26, 0xba, 0x7e}, Selector("isValidSignature(bytes32,bytes)"))

	method := abi.MustNewMethod("function onInstall(bytes)")
	require.Equal(t, method.ID(), Selector("onInstall(bytes)").Bytes())
}

func TestInterfaceIDOf(t *testing.T) {
	t.Parallel()

	a, b := Selector("a()"), Selector("b()")

	id := InterfaceIDOf("a()", "b()")
	for i := range id {
		require.Equal(t, a[i]^b[i], id[i])
	}

	// xor is order independent
	require.Equal(t, id, InterfaceIDOf("b()", "a()"))
}

func TestSupports(t *testing.T) {
	t.Parallel()

	native := Selector("native()")

	require.True(t, Supports(ERC165InterfaceID, native))
	require.True(t, Supports(ModuleInterfaceID, native))
	require.True(t, Supports(native, native))
	require.False(t, Supports(Selector("other()"), native))
	require.False(t, Supports(InvalidInterfaceID, InvalidInterfaceID))
}

func TestIsType(t *testing.T) {
	t.Parallel()

	require.True(t, IsType(big.NewInt(1), TypeValidator))
	require.False(t, IsType(big.NewInt(2), TypeValidator))
	require.False(t, IsType(nil, TypeValidator))
	require.False(t, IsType(new(big.Int).Lsh(big.NewInt(1), 64), 0))
}
