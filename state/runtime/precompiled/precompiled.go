package precompiled

import (
	"github.com/0xPolygon/edge-modules/chain"
	"github.com/0xPolygon/edge-modules/state/runtime"
	"github.com/0xPolygon/edge-modules/types"
)

var _ runtime.Runtime = &Precompiled{}

type contract interface {
	gas(input []byte, config *chain.ForksInTime) uint64
	run(input []byte) ([]byte, error)
}

// Precompiled is the runtime for the precompiled contracts
type Precompiled struct {
	contracts map[types.Address]contract
}

// NewPrecompiled creates a new runtime for the precompiled contracts
func NewPrecompiled() *Precompiled {
	p := &Precompiled{}
	p.setupContracts()

	return p
}

var (
	// P256VerifyAddr is the well known address of the secp256r1 verification endpoint
	P256VerifyAddr = types.StringToAddress("100")

	sha256Addr = types.StringToAddress("2")
)

func (p *Precompiled) setupContracts() {
	p.register(sha256Addr, &sha256Hash{})

	// p256verify fork (RIP-7212)
	p.register(P256VerifyAddr, &p256Verify{})
}

func (p *Precompiled) register(addr types.Address, b contract) {
	if len(p.contracts) == 0 {
		p.contracts = map[types.Address]contract{}
	}

	p.contracts[addr] = b
}

// CanRun implements the runtime interface
func (p *Precompiled) CanRun(c *runtime.Contract, _ runtime.Host, config *chain.ForksInTime) bool {
	if _, ok := p.contracts[c.CodeAddress]; !ok {
		return false
	}

	if c.CodeAddress == P256VerifyAddr {
		return config.P256Verify
	}

	return true
}

// Name implements the runtime interface
func (p *Precompiled) Name() string {
	return "precompiled"
}

// Run runs an execution
func (p *Precompiled) Run(c *runtime.Contract, _ runtime.Host, config *chain.ForksInTime) *runtime.ExecutionResult {
	contract := p.contracts[c.CodeAddress]
	gasCost := contract.gas(c.Input, config)

	// In the case of not enough gas for precompiled execution we return ErrOutOfGas
	if c.Gas < gasCost {
		return &runtime.ExecutionResult{
			GasLeft: 0,
			Err:     runtime.ErrOutOfGas,
		}
	}

	c.Gas = c.Gas - gasCost
	returnValue, err := contract.run(c.Input)

	result := &runtime.ExecutionResult{
		ReturnValue: returnValue,
		GasLeft:     c.Gas,
		GasUsed:     gasCost,
		Err:         err,
	}

	if result.Failed() {
		result.GasLeft = 0
		result.ReturnValue = nil
	}

	return result
}

// StaticCall executes the precompile at addr if it is active under the
// given forks. An inactive or unknown address behaves like an account
// without code: the call succeeds with an empty return value.
func (p *Precompiled) StaticCall(addr types.Address, input []byte, gas uint64,
	config *chain.ForksInTime) *runtime.ExecutionResult {
	c := runtime.NewStaticCall(types.ZeroAddress, addr, gas, input)

	if !p.CanRun(c, nil, config) {
		return &runtime.ExecutionResult{GasLeft: gas}
	}

	return p.Run(c, nil, config)
}
