package precompiled

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"

	"github.com/0xPolygon/edge-modules/chain"
)

const (
	p256VerifyGas = 3450

	// hash, r, s, x, y
	p256VerifyInputLength = 160
)

var (
	p256Curve = elliptic.P256()

	p256Valid   = []byte{1}
	p256Invalid = []byte{0}
)

// p256Verify verifies a secp256r1 signature. The input is the
// concatenation hash || r || s || x || y, each a 32 byte big endian word.
// The output is a 32 byte word set to 1 on success and 0 otherwise.
// Inputs of the wrong length yield an empty output.
type p256Verify struct {
}

func (p *p256Verify) gas(_ []byte, _ *chain.ForksInTime) uint64 {
	return p256VerifyGas
}

func (p *p256Verify) run(input []byte) ([]byte, error) {
	if len(input) != p256VerifyInputLength {
		return nil, nil
	}

	var (
		hash = input[0:32]
		r    = new(big.Int).SetBytes(input[32:64])
		s    = new(big.Int).SetBytes(input[64:96])
		x    = new(big.Int).SetBytes(input[96:128])
		y    = new(big.Int).SetBytes(input[128:160])
	)

	if !p256Curve.IsOnCurve(x, y) {
		return leftPadWord(p256Invalid), nil
	}

	pub := &ecdsa.PublicKey{Curve: p256Curve, X: x, Y: y}
	if !ecdsa.Verify(pub, hash, r, s) {
		return leftPadWord(p256Invalid), nil
	}

	return leftPadWord(p256Valid), nil
}

func leftPadWord(b []byte) []byte {
	out := make([]byte, 32)
	copy(out[32-len(b):], b)

	return out
}
