package server

import (
	"time"

	"github.com/0xPolygon/edge-modules/chain"
	"github.com/0xPolygon/edge-modules/state/runtime"
	"github.com/0xPolygon/edge-modules/state/runtime/precompiled"
)

var _ runtime.Host = (*localHost)(nil)

// localHost runs the modules outside of a chain. Time is the wall clock and
// only the precompiled contracts can be called, any other address has no code.
type localHost struct {
	precompiled *precompiled.Precompiled
	forks       chain.ForksInTime
	chainID     int64
	now         func() time.Time
}

func newLocalHost(p *precompiled.Precompiled, forks chain.ForksInTime, chainID int64) *localHost {
	return &localHost{
		precompiled: p,
		forks:       forks,
		chainID:     chainID,
		now:         time.Now,
	}
}

func (h *localHost) Callx(c *runtime.Contract, host runtime.Host) *runtime.ExecutionResult {
	if h.precompiled.CanRun(c, host, &h.forks) {
		return h.precompiled.Run(c, host, &h.forks)
	}

	return &runtime.ExecutionResult{
		GasLeft: c.Gas,
		Err:     runtime.ErrNoCode,
	}
}

func (h *localHost) GetTxContext() runtime.TxContext {
	return runtime.TxContext{
		Timestamp: h.now().Unix(),
		ChainID:   h.chainID,
	}
}
