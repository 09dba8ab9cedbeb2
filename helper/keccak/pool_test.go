package keccak

import (
	"testing"

	"github.com/0xPolygon/edge-modules/helper/hex"
	"github.com/stretchr/testify/require"
)

func TestKeccak256(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		hex.EncodeToString(Keccak256(nil, nil)),
	)

	// digest is appended to dst
	dst := Keccak256([]byte{0x1}, []byte("x"))
	require.Len(t, dst, 33)
	require.Equal(t, byte(0x1), dst[0])
}
