package verifier

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	"github.com/0xPolygon/edge-modules/helper/hex"
	"github.com/0xPolygon/edge-modules/types"
)

// SignatureLength is the wire length of a signature: r || s, 32 bytes each
const SignatureLength = 64

var ErrInvalidSignatureLength = errors.New("invalid signature length")

// DecodeSignature splits a signature into its r and s components
func DecodeSignature(sig []byte) (*big.Int, *big.Int, error) {
	if len(sig) != SignatureLength {
		return nil, nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidSignatureLength, SignatureLength, len(sig))
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:])

	return r, s, nil
}

// EncodeSignature is the inverse of DecodeSignature
func EncodeSignature(r, s *big.Int) []byte {
	out := make([]byte, 0, SignatureLength)
	out = append(out, hex.PadLeft(r)...)

	return append(out, hex.PadLeft(s)...)
}

// MessageHash is the hash the credential actually signs: the digest
// handed to the validator is hashed once more with SHA-256
func MessageHash(digest types.Hash) types.Hash {
	return sha256.Sum256(digest.Bytes())
}
