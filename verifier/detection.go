package verifier

import (
	"crypto/elliptic"
	"crypto/sha256"
	"math/big"

	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/types"
)

type detectionVector struct {
	hash types.Hash
	r, s *big.Int
	key  p256.PublicKey
}

// knownSignature is a fixed valid signature used for endpoint detection.
// Private key d = 1 (public key G), nonce k = 2.
var knownSignature = newDetectionVector()

func newDetectionVector() detectionVector {
	var (
		curve = elliptic.P256()
		d     = big.NewInt(1)
		k     = big.NewInt(2)
		hash  = types.Hash(sha256.Sum256([]byte("p256 endpoint detection")))
	)

	//nolint:staticcheck
	rx, _ := curve.ScalarBaseMult(k.Bytes())
	r := new(big.Int).Mod(rx, p256.N)

	// s = k⁻¹(e + r·d) mod n
	s := new(big.Int).Mul(r, d)
	s.Add(s, new(big.Int).SetBytes(hash.Bytes()))
	s.Mul(s, new(big.Int).ModInverse(k, p256.N))
	s.Mod(s, p256.N)

	params := curve.Params()

	return detectionVector{
		hash: hash,
		r:    r,
		s:    p256.NormalizeS(s),
		key:  p256.NewPublicKey(params.Gx, params.Gy),
	}
}
