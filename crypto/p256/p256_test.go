package p256

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/go-webauthn/webauthn/protocol/webauthncbor"
	"github.com/go-webauthn/webauthn/protocol/webauthncose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func generateKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return priv
}

// sign returns a canonical (low-s) signature
func sign(t *testing.T, priv *ecdsa.PrivateKey, hash []byte) (*big.Int, *big.Int) {
	t.Helper()

	r, s, err := ecdsa.Sign(rand.Reader, priv, hash)
	require.NoError(t, err)

	return r, NormalizeS(s)
}

func TestIsValidPoint(t *testing.T) {
	t.Parallel()

	priv := generateKey(t)

	assert.True(t, IsValidPoint(params.Gx, params.Gy))
	assert.True(t, IsValidPoint(priv.X, priv.Y))

	cases := []struct {
		name string
		x, y *big.Int
	}{
		{"zero point", big.NewInt(0), big.NewInt(0)},
		{"nil", nil, nil},
		{"off curve", priv.X, new(big.Int).Add(priv.Y, big.NewInt(1))},
		{"x equals p", new(big.Int).Set(P), priv.Y},
		{"x above p", new(big.Int).Add(priv.X, P), priv.Y},
		{"negative y", priv.X, new(big.Int).Neg(priv.Y)},
	}

	for _, c := range cases {
		assert.False(t, IsValidPoint(c.x, c.y), c.name)
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	priv := generateKey(t)
	other := generateKey(t)

	hash := sha256.Sum256([]byte("hello"))
	r, s := sign(t, priv, hash[:])

	assert.True(t, Verify(hash[:], r, s, priv.X, priv.Y))
	assert.False(t, Verify(hash[:], r, s, other.X, other.Y))

	wrongHash := sha256.Sum256([]byte("world"))
	assert.False(t, Verify(wrongHash[:], r, s, priv.X, priv.Y))
}

func TestVerify_RejectsHighS(t *testing.T) {
	t.Parallel()

	priv := generateKey(t)
	hash := sha256.Sum256([]byte("malleable"))
	r, s := sign(t, priv, hash[:])

	highS := new(big.Int).Sub(N, s)

	// the low-s form is accepted and the equivalent high-s form is not
	assert.True(t, Verify(hash[:], r, s, priv.X, priv.Y))
	assert.False(t, Verify(hash[:], r, highS, priv.X, priv.Y))
}

func TestVerify_OutOfRange(t *testing.T) {
	t.Parallel()

	priv := generateKey(t)
	hash := sha256.Sum256([]byte("range"))
	r, s := sign(t, priv, hash[:])

	assert.False(t, Verify(hash[:], big.NewInt(0), s, priv.X, priv.Y))
	assert.False(t, Verify(hash[:], new(big.Int).Add(r, N), s, priv.X, priv.Y))
	assert.False(t, Verify(hash[:], r, big.NewInt(0), priv.X, priv.Y))
	assert.False(t, Verify(hash[:], nil, s, priv.X, priv.Y))
	assert.False(t, Verify(hash[:], r, s, big.NewInt(0), big.NewInt(0)))
}

func TestVerify_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		var (
			msg     = rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(tt, "digest")
			flipBit = rapid.IntRange(0, 255).Draw(tt, "flipped bit")
		)

		priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			tt.Fatal(err)
		}

		r, s, err := ecdsa.Sign(rand.Reader, priv, msg)
		if err != nil {
			tt.Fatal(err)
		}

		low := NormalizeS(s)
		if !Verify(msg, r, low, priv.X, priv.Y) {
			tt.Fatal("valid signature rejected")
		}

		if Verify(msg, r, new(big.Int).Sub(N, low), priv.X, priv.Y) {
			tt.Fatal("high-s signature accepted")
		}

		tampered := append([]byte{}, msg...)
		tampered[flipBit/8] ^= 1 << (flipBit % 8)

		if Verify(tampered, r, low, priv.X, priv.Y) {
			tt.Fatal("signature accepted for a different digest")
		}
	})
}

func TestPublicKey_Encoding(t *testing.T) {
	t.Parallel()

	priv := generateKey(t)
	key := PublicKeyFromECDSA(&priv.PublicKey)

	require.True(t, key.IsValid())
	require.False(t, key.IsZero())
	require.True(t, PublicKey{}.IsZero())

	decoded, err := PublicKeyFromBytes(key.Bytes())
	require.NoError(t, err)
	require.True(t, key.Equal(decoded))

	_, err = PublicKeyFromBytes(make([]byte, 63))
	require.ErrorIs(t, err, ErrInvalidPublicKeyLength)
}

func TestPublicKey_IsEncodable(t *testing.T) {
	t.Parallel()

	maxCoord := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	assert.True(t, NewPublicKey(maxCoord, maxCoord).IsEncodable())
	assert.True(t, PublicKey{}.IsEncodable())
	assert.False(t, NewPublicKey(new(big.Int).Add(maxCoord, big.NewInt(1)), big.NewInt(1)).IsEncodable())
	assert.False(t, NewPublicKey(big.NewInt(1), big.NewInt(-1)).IsEncodable())
}

func TestPublicKeyFromCOSE(t *testing.T) {
	t.Parallel()

	priv := generateKey(t)

	coseKey := webauthncose.EC2PublicKeyData{
		PublicKeyData: webauthncose.PublicKeyData{
			KeyType:   int64(webauthncose.EllipticKey),
			Algorithm: int64(webauthncose.AlgES256),
		},
		Curve:  int64(webauthncose.P256),
		XCoord: priv.X.FillBytes(make([]byte, 32)),
		YCoord: priv.Y.FillBytes(make([]byte, 32)),
	}

	raw, err := webauthncbor.Marshal(coseKey)
	require.NoError(t, err)

	key, err := PublicKeyFromCOSE(raw)
	require.NoError(t, err)
	require.True(t, key.Equal(PublicKeyFromECDSA(&priv.PublicKey)))

	_, err = PublicKeyFromCOSE([]byte{0x01, 0x02})
	require.Error(t, err)
}
