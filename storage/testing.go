package storage

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/types"
)

type PlaceholderStorage func(t *testing.T) (Storage, func())

var (
	addr1 = types.StringToAddress("1")
	addr2 = types.StringToAddress("2")

	hash1 = types.StringToHash("1")
	hash2 = types.StringToHash("2")
)

// TestStorage tests a set of tests on a storage
func TestStorage(t *testing.T, m PlaceholderStorage) {
	t.Helper()

	t.Run("testCredentials", func(t *testing.T) {
		testCredentials(t, m)
	})
	t.Run("testZeroCredential", func(t *testing.T) {
		testZeroCredential(t, m)
	})
	t.Run("testPlans", func(t *testing.T) {
		testPlans(t, m)
	})
	t.Run("testPlanCounter", func(t *testing.T) {
		testPlanCounter(t, m)
	})
	t.Run("testState", func(t *testing.T) {
		testState(t, m)
	})
}

func testCredentials(t *testing.T, m PlaceholderStorage) {
	t.Helper()

	s, closeFn := m(t)
	defer closeFn()

	key1 := p256.NewPublicKey(big.NewInt(1), big.NewInt(2))
	key2 := p256.NewPublicKey(big.NewInt(3), big.NewInt(4))

	_, ok, err := s.ReadCredential(0, addr1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.WriteCredential(0, addr1, key1))
	require.NoError(t, s.WriteCredential(1, addr1, key2))
	require.NoError(t, s.WriteCredential(0, addr2, key2))

	cases := []struct {
		ns   uint32
		addr types.Address
		key  p256.PublicKey
	}{
		{0, addr1, key1},
		{1, addr1, key2},
		{0, addr2, key2},
	}

	for _, c := range cases {
		key, ok, err := s.ReadCredential(c.ns, c.addr)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, c.key.Equal(key))
	}

	// overwrite
	require.NoError(t, s.WriteCredential(0, addr1, key2))

	key, ok, err := s.ReadCredential(0, addr1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, key2.Equal(key))

	// returned keys are copies
	key.X.SetInt64(99)

	key, _, err = s.ReadCredential(0, addr1)
	require.NoError(t, err)
	assert.True(t, key2.Equal(key))

	// delete only touches its own binding
	require.NoError(t, s.DeleteCredential(0, addr1))

	_, ok, err = s.ReadCredential(0, addr1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.ReadCredential(1, addr1)
	require.NoError(t, err)
	assert.True(t, ok)

	// deleting a missing binding is not an error
	require.NoError(t, s.DeleteCredential(5, addr2))
}

func testZeroCredential(t *testing.T, m PlaceholderStorage) {
	t.Helper()

	s, closeFn := m(t)
	defer closeFn()

	// the zero point is a binding like any other
	require.NoError(t, s.WriteCredential(3, addr1, p256.PublicKey{}))

	key, ok, err := s.ReadCredential(3, addr1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, key.IsZero())
}

func testPlans(t *testing.T, m PlaceholderStorage) {
	t.Helper()

	s, closeFn := m(t)
	defer closeFn()

	_, ok, err := s.ReadPlan(1)
	require.NoError(t, err)
	assert.False(t, ok)

	plan := &types.Plan{
		ID:                1,
		TokenIn:           addr1,
		TokenOut:          addr2,
		Amount:            big.NewInt(100),
		Interval:          86400,
		LastExecutionTime: 0,
		Active:            true,
	}

	require.NoError(t, s.WritePlan(plan))

	found, ok, err := s.ReadPlan(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, plan, found)

	plan.Active = false
	plan.LastExecutionTime = 86400
	require.NoError(t, s.WritePlan(plan))

	found, ok, err = s.ReadPlan(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, found.Active)
	assert.Equal(t, uint64(86400), found.LastExecutionTime)
}

func testPlanCounter(t *testing.T, m PlaceholderStorage) {
	t.Helper()

	s, closeFn := m(t)
	defer closeFn()

	n, err := s.ReadPlanCounter()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)

	for _, i := range []uint64{1, 2, 1 << 40} {
		require.NoError(t, s.WritePlanCounter(i))

		n, err = s.ReadPlanCounter()
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
}

func testState(t *testing.T, m PlaceholderStorage) {
	t.Helper()

	s, closeFn := m(t)
	defer closeFn()

	assert.Equal(t, types.ZeroHash, s.GetStorage(addr1, hash1))

	s.SetState(addr1, hash1, hash2)
	s.SetState(addr2, hash1, hash1)

	assert.Equal(t, hash2, s.GetStorage(addr1, hash1))
	assert.Equal(t, hash1, s.GetStorage(addr2, hash1))
	assert.Equal(t, types.ZeroHash, s.GetStorage(addr1, hash2))

	s.SetState(addr1, hash1, types.ZeroHash)
	assert.Equal(t, types.ZeroHash, s.GetStorage(addr1, hash1))
}
