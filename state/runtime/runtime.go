package runtime

import (
	"errors"
	"math/big"

	"github.com/0xPolygon/edge-modules/chain"
	"github.com/0xPolygon/edge-modules/types"
)

// TxContext is the context of the invocation
type TxContext struct {
	Origin    types.Address
	Number    int64
	Timestamp int64
	ChainID   int64
}

// Host dispatches calls to contracts outside of the current module
type Host interface {
	Callx(c *Contract, host Host) *ExecutionResult
	GetTxContext() TxContext
}

// ExecutionResult includes all output after executing a call
// no matter the execution itself is successful or not.
type ExecutionResult struct {
	ReturnValue []byte // Returned data from the runtime (function result or data supplied with revert opcode)
	GasLeft     uint64 // Total gas left as result of execution
	GasUsed     uint64 // Total gas used as result of execution
	Err         error  // Any error encountered during the execution, listed below
}

func (r *ExecutionResult) Succeeded() bool { return r.Err == nil }
func (r *ExecutionResult) Failed() bool    { return r.Err != nil }
func (r *ExecutionResult) Reverted() bool  { return errors.Is(r.Err, ErrExecutionReverted) }

var (
	ErrOutOfGas          = errors.New("out of gas")
	ErrNotAuth           = errors.New("not in allow list")
	ErrExecutionReverted = errors.New("execution was reverted")
	ErrNoCode            = errors.New("no contract at address")
)

type CallType int

const (
	Call CallType = iota
	StaticCall
)

// Runtime can process contracts
type Runtime interface {
	Run(c *Contract, host Host, config *chain.ForksInTime) *ExecutionResult
	CanRun(c *Contract, host Host, config *chain.ForksInTime) bool
	Name() string
}

// Contract is the instance being called
type Contract struct {
	Type        CallType
	CodeAddress types.Address
	Address     types.Address
	Caller      types.Address
	Depth       int
	Value       *big.Int
	Input       []byte
	Gas         uint64
	Static      bool
}

func NewContractCall(
	depth int,
	from types.Address,
	to types.Address,
	value *big.Int,
	gas uint64,
	input []byte,
) *Contract {
	return &Contract{
		Type:        Call,
		Caller:      from,
		CodeAddress: to,
		Address:     to,
		Gas:         gas,
		Value:       value,
		Input:       input,
		Depth:       depth,
	}
}

// NewStaticCall builds a read only call
func NewStaticCall(from, to types.Address, gas uint64, input []byte) *Contract {
	c := NewContractCall(0, from, to, big.NewInt(0), gas, input)
	c.Type = StaticCall
	c.Static = true

	return c
}
