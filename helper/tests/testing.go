package tests

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"

	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/types"
	"github.com/0xPolygon/edge-modules/verifier"
)

// GenerateP256Key creates a passkey and returns it with its public key
func GenerateP256Key(t require.TestingT) (*ecdsa.PrivateKey, p256.PublicKey) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return priv, p256.PublicKeyFromECDSA(&priv.PublicKey)
}

// SignDigest signs digest the way a passkey does: over its SHA-256 hash,
// with the low-s form of the signature
func SignDigest(t require.TestingT, priv *ecdsa.PrivateKey, digest types.Hash) []byte {
	hash := verifier.MessageHash(digest)

	r, s, err := ecdsa.Sign(rand.Reader, priv, hash.Bytes())
	require.NoError(t, err)

	return verifier.EncodeSignature(r, p256.NormalizeS(s))
}
