package automation

import (
	"math/big"

	"github.com/umbracle/ethgo/abi"

	"github.com/0xPolygon/edge-modules/types"
)

var (
	// IncreaseAllowanceFunc is the token method used to grant spend allowance to a dex
	IncreaseAllowanceFunc = abi.MustNewMethod("function increaseAllowance(address spender, uint256 addedValue) returns (bool)")

	PlanCreatedEvent = abi.MustNewEvent("event PlanCreated(uint256 indexed planId, address tokenIn, " +
		"address tokenOut, uint256 amount, uint256 interval)")
	PlanExecutedEvent     = abi.MustNewEvent("event PlanExecuted(uint256 indexed planId, address indexed dex, uint256 timestamp)")
	PlanCancelledEvent    = abi.MustNewEvent("event PlanCancelled(uint256 indexed planId)")
	DexWhitelistedEvent   = abi.MustNewEvent("event DexWhitelisted(address indexed dex)")
	DexUnwhitelistedEvent = abi.MustNewEvent("event DexUnwhitelisted(address indexed dex)")

	planCreatedDataABIType  = abi.MustNewType("tuple(address tokenIn, address tokenOut, uint256 amount, uint256 interval)")
	planExecutedDataABIType = abi.MustNewType("tuple(uint256 timestamp)")
)

func planIDTopic(id uint64) types.Hash {
	return types.BytesToHash(new(big.Int).SetUint64(id).Bytes())
}

func (e *Executor) emit(event *abi.Event, topics []types.Hash, data []byte) {
	if e.events == nil {
		return
	}

	e.events.EmitLog(&types.Log{
		Address: e.addr,
		Topics:  append([]types.Hash{types.Hash(event.ID())}, topics...),
		Data:    data,
	})
}

func (e *Executor) emitPlanCreated(plan *types.Plan) {
	data, err := planCreatedDataABIType.Encode(map[string]interface{}{
		"tokenIn":  plan.TokenIn,
		"tokenOut": plan.TokenOut,
		"amount":   plan.Amount,
		"interval": new(big.Int).SetUint64(plan.Interval),
	})
	if err != nil {
		e.logger.Error("failed to encode event", "event", "PlanCreated", "err", err)

		return
	}

	e.emit(PlanCreatedEvent, []types.Hash{planIDTopic(plan.ID)}, data)
}

func (e *Executor) emitPlanExecuted(id uint64, dex types.Address, timestamp uint64) {
	data, err := planExecutedDataABIType.Encode(map[string]interface{}{
		"timestamp": new(big.Int).SetUint64(timestamp),
	})
	if err != nil {
		e.logger.Error("failed to encode event", "event", "PlanExecuted", "err", err)

		return
	}

	e.emit(PlanExecutedEvent, []types.Hash{planIDTopic(id), types.BytesToHash(dex.Bytes())}, data)
}

func (e *Executor) emitPlanCancelled(id uint64) {
	e.emit(PlanCancelledEvent, []types.Hash{planIDTopic(id)}, nil)
}

func (e *Executor) emitWhitelist(event *abi.Event, dex types.Address) {
	e.emit(event, []types.Hash{types.BytesToHash(dex.Bytes())}, nil)
}
