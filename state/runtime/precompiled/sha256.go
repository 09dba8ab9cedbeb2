package precompiled

import (
	"crypto/sha256"

	"github.com/0xPolygon/edge-modules/chain"
)

const (
	sha256BaseGas = 60
	sha256WordGas = 12
)

// sha256Hash hashes its whole input, passkey clients use it to derive the
// message hash handed to p256verify
type sha256Hash struct{}

func (s *sha256Hash) gas(input []byte, _ *chain.ForksInTime) uint64 {
	words := uint64(len(input)+31) / 32

	return sha256BaseGas + words*sha256WordGas
}

func (s *sha256Hash) run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)

	return h[:], nil
}
