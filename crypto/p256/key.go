package p256

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/go-webauthn/webauthn/protocol/webauthncose"

	"github.com/0xPolygon/edge-modules/helper/hex"
)

const (
	// CoordinateLength is the byte length of an encoded coordinate
	CoordinateLength = 32

	// PublicKeyLength is the byte length of an encoded public key (x || y)
	PublicKeyLength = 2 * CoordinateLength
)

var (
	ErrInvalidPublicKeyLength = errors.New("invalid public key length")
	ErrUnsupportedCOSEKey     = errors.New("unsupported COSE key")
)

// PublicKey is a pair of 256-bit field elements purportedly on the curve.
// Validity is checked separately with IsValid.
type PublicKey struct {
	X *big.Int
	Y *big.Int
}

// NewPublicKey builds a public key from copies of its coordinates.
// Nil coordinates are read as zero
func NewPublicKey(x, y *big.Int) PublicKey {
	return PublicKey{X: new(big.Int).Set(coordinate(x)), Y: new(big.Int).Set(coordinate(y))}
}

// IsEncodable reports whether both coordinates fit the 32 byte encoding
func (k PublicKey) IsEncodable() bool {
	fits := func(c *big.Int) bool {
		return c == nil || (c.Sign() >= 0 && c.BitLen() <= 8*CoordinateLength)
	}

	return fits(k.X) && fits(k.Y)
}

// PublicKeyFromBytes decodes a 64 byte big endian x || y encoding
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	if len(b) != PublicKeyLength {
		return PublicKey{}, fmt.Errorf("%w: %d", ErrInvalidPublicKeyLength, len(b))
	}

	return PublicKey{
		X: new(big.Int).SetBytes(b[:CoordinateLength]),
		Y: new(big.Int).SetBytes(b[CoordinateLength:]),
	}, nil
}

// PublicKeyFromECDSA converts a standard library key
func PublicKeyFromECDSA(pub *ecdsa.PublicKey) PublicKey {
	return NewPublicKey(pub.X, pub.Y)
}

// PublicKeyFromCOSE extracts the key from a WebAuthn credential public key
// (COSE_Key, EC2 / ES256 / P-256)
func PublicKeyFromCOSE(coseKey []byte) (PublicKey, error) {
	parsed, err := webauthncose.ParsePublicKey(coseKey)
	if err != nil {
		return PublicKey{}, fmt.Errorf("failed to parse COSE key: %w", err)
	}

	ec2, ok := parsed.(webauthncose.EC2PublicKeyData)
	if !ok {
		return PublicKey{}, fmt.Errorf("%w: not an EC2 key", ErrUnsupportedCOSEKey)
	}

	if ec2.Algorithm != int64(webauthncose.AlgES256) {
		return PublicKey{}, fmt.Errorf("%w: algorithm %d", ErrUnsupportedCOSEKey, ec2.Algorithm)
	}

	if ec2.Curve != int64(webauthncose.P256) {
		return PublicKey{}, fmt.Errorf("%w: curve %d", ErrUnsupportedCOSEKey, ec2.Curve)
	}

	if len(ec2.XCoord) > CoordinateLength || len(ec2.YCoord) > CoordinateLength {
		return PublicKey{}, ErrInvalidPublicKeyLength
	}

	return PublicKey{
		X: new(big.Int).SetBytes(ec2.XCoord),
		Y: new(big.Int).SetBytes(ec2.YCoord),
	}, nil
}

// IsZero reports whether both coordinates are zero (or unset)
func (k PublicKey) IsZero() bool {
	return (k.X == nil || k.X.Sign() == 0) && (k.Y == nil || k.Y.Sign() == 0)
}

// IsValid reports whether the key is a point of the curve
func (k PublicKey) IsValid() bool {
	return IsValidPoint(k.X, k.Y)
}

// Equal compares two keys by value
func (k PublicKey) Equal(o PublicKey) bool {
	return coordinate(k.X).Cmp(coordinate(o.X)) == 0 && coordinate(k.Y).Cmp(coordinate(o.Y)) == 0
}

// Bytes returns the 64 byte x || y encoding
func (k PublicKey) Bytes() []byte {
	out := make([]byte, 0, PublicKeyLength)
	out = append(out, hex.PadLeft(k.X)...)

	return append(out, hex.PadLeft(k.Y)...)
}

func (k PublicKey) String() string {
	return hex.EncodeToHex(k.Bytes())
}

func coordinate(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}

	return v
}
