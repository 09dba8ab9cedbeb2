package verifier

import (
	"math/big"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/edge-modules/chain"
	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/helper/hex"
	"github.com/0xPolygon/edge-modules/state/runtime/precompiled"
	"github.com/0xPolygon/edge-modules/types"
)

const (
	SoftwareBackendName   = "software"
	PrecompileBackendName = "precompile"
	TwoTierBackendName    = "two-tier"

	// precompileCallGas is the gas forwarded to the verification endpoint
	precompileCallGas = 100_000
)

// Backend performs the curve verification of an already hashed message
type Backend interface {
	Name() string
	Verify(hash types.Hash, r, s *big.Int, key p256.PublicKey) bool
}

// PrecompileCaller performs a read only call. An empty result means there
// is no contract at the address.
type PrecompileCaller interface {
	StaticCall(addr types.Address, input []byte) []byte
}

// acceptable holds the checks shared by every backend
func acceptable(r, s *big.Int, key p256.PublicKey) bool {
	if r == nil || s == nil || r.Sign() <= 0 || r.Cmp(p256.N) >= 0 {
		return false
	}

	if s.Sign() <= 0 || s.Cmp(p256.HalfN) > 0 {
		return false
	}

	return key.IsValid()
}

// SoftwareBackend verifies with the in-process curve arithmetic
type SoftwareBackend struct{}

func (SoftwareBackend) Name() string {
	return SoftwareBackendName
}

func (SoftwareBackend) Verify(hash types.Hash, r, s *big.Int, key p256.PublicKey) bool {
	if !acceptable(r, s, key) {
		return false
	}

	return p256.Verify(hash.Bytes(), r, s, key.X, key.Y)
}

// PrecompileBackend verifies through the well known verification endpoint
type PrecompileBackend struct {
	caller PrecompileCaller
	addr   types.Address
}

func NewPrecompileBackend(caller PrecompileCaller) *PrecompileBackend {
	return &PrecompileBackend{
		caller: caller,
		addr:   precompiled.P256VerifyAddr,
	}
}

func (b *PrecompileBackend) Name() string {
	return PrecompileBackendName
}

func (b *PrecompileBackend) Verify(hash types.Hash, r, s *big.Int, key p256.PublicKey) bool {
	if !acceptable(r, s, key) {
		return false
	}

	return isTrueWord(b.call(hash, r, s, key))
}

// call returns the raw endpoint response
func (b *PrecompileBackend) call(hash types.Hash, r, s *big.Int, key p256.PublicKey) []byte {
	return b.caller.StaticCall(b.addr, encodeInput(hash, r, s, key))
}

// TwoTierBackend asks the endpoint first and falls back to software
// when the endpoint does not answer
type TwoTierBackend struct {
	precompile *PrecompileBackend
	fallback   Backend
}

func NewTwoTierBackend(caller PrecompileCaller) *TwoTierBackend {
	return &TwoTierBackend{
		precompile: NewPrecompileBackend(caller),
		fallback:   SoftwareBackend{},
	}
}

func (b *TwoTierBackend) Name() string {
	return TwoTierBackendName
}

func (b *TwoTierBackend) Verify(hash types.Hash, r, s *big.Int, key p256.PublicKey) bool {
	if !acceptable(r, s, key) {
		return false
	}

	out := b.precompile.call(hash, r, s, key)
	if len(out) == 0 {
		return b.fallback.Verify(hash, r, s, key)
	}

	return isTrueWord(out)
}

// Detect calls the endpoint once with a known valid signature and returns
// the precompile backend if it answers correctly, the software backend otherwise
func Detect(logger hclog.Logger, caller PrecompileCaller) Backend {
	backend := NewPrecompileBackend(caller)

	out := backend.call(knownSignature.hash, knownSignature.r, knownSignature.s, knownSignature.key)

	switch {
	case len(out) == 0:
		logger.Debug("verification endpoint not found, using software verification")

		return SoftwareBackend{}
	case !isTrueWord(out):
		logger.Warn("verification endpoint rejected the known signature, using software verification",
			"response", hex.EncodeToHex(out))

		return SoftwareBackend{}
	}

	logger.Debug("verification endpoint detected", "address", backend.addr)

	return backend
}

// PrecompileHost exposes the precompiled runtime, under a fork
// configuration, as a PrecompileCaller
type PrecompileHost struct {
	runtime *precompiled.Precompiled
	forks   chain.ForksInTime
}

func NewPrecompileHost(runtime *precompiled.Precompiled, forks chain.ForksInTime) *PrecompileHost {
	return &PrecompileHost{runtime: runtime, forks: forks}
}

func (h *PrecompileHost) StaticCall(addr types.Address, input []byte) []byte {
	res := h.runtime.StaticCall(addr, input, precompileCallGas, &h.forks)
	if res.Failed() {
		return nil
	}

	return res.ReturnValue
}

func encodeInput(hash types.Hash, r, s *big.Int, key p256.PublicKey) []byte {
	input := make([]byte, 0, 160)
	input = append(input, hash.Bytes()...)
	input = append(input, hex.PadLeft(r)...)
	input = append(input, hex.PadLeft(s)...)

	return append(input, key.Bytes()...)
}

func isTrueWord(out []byte) bool {
	if len(out) != 32 {
		return false
	}

	for _, b := range out[:31] {
		if b != 0 {
			return false
		}
	}

	return out[31] == 1
}
