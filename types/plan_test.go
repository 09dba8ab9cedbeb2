package types

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlan_RLP(t *testing.T) {
	t.Parallel()

	plan := &Plan{
		ID:                3,
		TokenIn:           StringToAddress("0xa"),
		TokenOut:          StringToAddress("0xb"),
		Amount:            new(big.Int).Lsh(big.NewInt(1), 200),
		Interval:          86400,
		LastExecutionTime: 172800,
		Active:            true,
	}

	decoded := new(Plan)
	require.NoError(t, decoded.UnmarshalRLP(plan.MarshalRLP()))
	require.Equal(t, plan, decoded)

	require.Error(t, decoded.UnmarshalRLP([]byte{0xc0}))
}

func TestPlan_NextExecutionTime(t *testing.T) {
	t.Parallel()

	plan := &Plan{Interval: 86400}
	require.Equal(t, uint64(86400), plan.NextExecutionTime())

	plan.LastExecutionTime = math.MaxUint64 - 10
	require.Equal(t, uint64(math.MaxUint64), plan.NextExecutionTime())
}

func TestPlan_Copy(t *testing.T) {
	t.Parallel()

	plan := &Plan{ID: 1, Amount: big.NewInt(100)}
	cp := plan.Copy()

	cp.Amount.SetInt64(5)
	cp.Active = true

	require.Equal(t, int64(100), plan.Amount.Int64())
	require.False(t, plan.Active)
}
