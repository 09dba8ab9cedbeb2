// Package p256 implements point validation and ECDSA verification over
// the NIST secp256r1 (P-256) curve.
package p256

import (
	"crypto/elliptic"
	"math/big"
)

var (
	curve  = elliptic.P256()
	params = curve.Params()

	// P is the order of the underlying field
	P = params.P
	// N is the order of the base point
	N = params.N
	// B is the constant of the curve equation y² = x³ - 3x + b
	B = params.B
	// HalfN is the upper bound for the canonical (low) s value
	HalfN = new(big.Int).Rsh(N, 1)

	three = big.NewInt(3)
)

// IsValidPoint reports whether (x, y) is an affine point of the curve.
// Both coordinates must be in the range (0, p).
func IsValidPoint(x, y *big.Int) bool {
	if x == nil || y == nil {
		return false
	}

	if x.Sign() <= 0 || x.Cmp(P) >= 0 || y.Sign() <= 0 || y.Cmp(P) >= 0 {
		return false
	}

	// y² mod p
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, P)

	// x³ - 3x + b mod p
	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)

	threeX := new(big.Int).Mul(three, x)
	rhs.Sub(rhs, threeX)
	rhs.Add(rhs, B)
	rhs.Mod(rhs, P)

	return lhs.Cmp(rhs) == 0
}

// Verify checks an ECDSA signature (r, s) of hash against the public key (x, y).
// Signatures with s above n/2 are rejected even if they are otherwise valid.
// Any failing check returns false.
func Verify(hash []byte, r, s, x, y *big.Int) bool {
	if r == nil || s == nil {
		return false
	}

	if r.Sign() <= 0 || r.Cmp(N) >= 0 {
		return false
	}

	if s.Sign() <= 0 || s.Cmp(HalfN) > 0 {
		return false
	}

	if !IsValidPoint(x, y) {
		return false
	}

	e := hashToInt(hash)

	sInv := new(big.Int).ModInverse(s, N)
	if sInv == nil {
		return false
	}

	u1 := new(big.Int).Mul(e, sInv)
	u1.Mod(u1, N)

	u2 := new(big.Int).Mul(r, sInv)
	u2.Mod(u2, N)

	// R = u1·G + u2·Q
	//nolint:staticcheck
	x1, y1 := curve.ScalarBaseMult(u1.Bytes())
	//nolint:staticcheck
	x2, y2 := curve.ScalarMult(x, y, u2.Bytes())
	//nolint:staticcheck
	rx, ry := curve.Add(x1, y1, x2, y2)

	// point at infinity
	if rx.Sign() == 0 && ry.Sign() == 0 {
		return false
	}

	rx.Mod(rx, N)

	return rx.Cmp(r) == 0
}

// NormalizeS returns the canonical low form of s
func NormalizeS(s *big.Int) *big.Int {
	if s.Cmp(HalfN) > 0 {
		return new(big.Int).Sub(N, s)
	}

	return new(big.Int).Set(s)
}

// hashToInt converts a hash to an integer modulo the curve order
// as described in SEC 1, section 4.1.3
func hashToInt(hash []byte) *big.Int {
	orderBytes := (N.BitLen() + 7) / 8
	if len(hash) > orderBytes {
		hash = hash[:orderBytes]
	}

	return new(big.Int).SetBytes(hash)
}
