package hex

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeUint64 verifies that uint64 values
// are properly decoded from hex
func TestDecodeUint64(t *testing.T) {
	t.Parallel()

	uint64Array := []uint64{
		0,
		1,
		11,
		67312,
		80604,
		^uint64(0), // max uint64
	}

	for _, value := range uint64Array {
		decodedValue, err := DecodeUint64(fmt.Sprintf("0x%x", value))
		assert.NoError(t, err)

		assert.Equal(t, value, decodedValue)
	}
}

func TestDecodeUint256(t *testing.T) {
	t.Parallel()

	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	cases := []struct {
		input    string
		expected *big.Int
		err      bool
	}{
		{"86400", big.NewInt(86400), false},
		{"0x15180", big.NewInt(86400), false},
		{EncodeBig(maxUint256), maxUint256, false},
		{EncodeBig(new(big.Int).Lsh(big.NewInt(1), 256)), nil, true},
		{"-1", nil, true},
		{"", nil, true},
		{"0x", nil, true},
		{"0xzz", nil, true},
	}

	for _, c := range cases {
		n, err := DecodeUint256(c.input)
		if c.err {
			require.Error(t, err, c.input)

			continue
		}

		require.NoError(t, err, c.input)
		require.Equal(t, 0, c.expected.Cmp(n), c.input)
	}
}

func TestPadLeft(t *testing.T) {
	t.Parallel()

	out := PadLeft(big.NewInt(1))
	require.Len(t, out, 32)
	require.Equal(t, byte(1), out[31])
	require.Equal(t, make([]byte, 31), out[:31])

	require.Equal(t, make([]byte, 32), PadLeft(nil))
}

func TestDecodeHex_OddLength(t *testing.T) {
	t.Parallel()

	b, err := DecodeHex("0x100")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x00}, b)
}
