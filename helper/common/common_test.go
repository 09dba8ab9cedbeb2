package common

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestParseUint64orHex(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       *string
		expected uint64
		err      bool
	}{
		{nil, 0, false},
		{strPtr("86400"), 86400, false},
		{strPtr("0x15180"), 86400, false},
		{strPtr("-1"), 0, true},
		{strPtr("0xzz"), 0, true},
	}

	for _, c := range cases {
		v, err := ParseUint64orHex(c.in)
		if c.err {
			assert.Error(t, err)

			continue
		}

		require.NoError(t, err)
		assert.Equal(t, c.expected, v)
	}
}

func TestParseUint256orHex(t *testing.T) {
	t.Parallel()

	v, err := ParseUint256orHex(strPtr("100"))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), v)

	v, err = ParseUint256orHex(strPtr("0xff"))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(255), v)

	max := "0x" + "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	_, err = ParseUint256orHex(&max)
	require.NoError(t, err)

	tooBig := max + "f"
	_, err = ParseUint256orHex(&tooBig)
	assert.Error(t, err)

	_, err = ParseUint256orHex(strPtr("-5"))
	assert.Error(t, err)

	_, err = ParseUint256orHex(strPtr("abc"))
	assert.Error(t, err)
}

func TestSetupDataDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "data")

	require.NoError(t, SetupDataDir(dir, []string{"storage"}))
	assert.True(t, DirectoryExists(dir))
	assert.True(t, DirectoryExists(filepath.Join(dir, "storage")))

	// idempotent
	require.NoError(t, SetupDataDir(dir, []string{"storage"}))
}
