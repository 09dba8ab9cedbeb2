package verifier

import (
	"github.com/armon/go-metrics"
	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/types"
)

// verifierMetrics is a prefix used for verification-related metrics
const verifierMetrics = "verifier"

// Verifier turns an opaque signature blob and a digest into a pass/fail
// answer. It never returns an error: every failure is a negative result.
type Verifier struct {
	logger  hclog.Logger
	backend Backend
}

// NewVerifier creates a verifier with the given backend
func NewVerifier(logger hclog.Logger, backend Backend) *Verifier {
	return &Verifier{
		logger:  logger.Named("verifier"),
		backend: backend,
	}
}

// Backend returns the name of the active backend
func (v *Verifier) Backend() string {
	return v.backend.Name()
}

// Verify checks that signature is a valid signature of digest by key.
// The digest is hashed with SHA-256 before the curve verification.
func (v *Verifier) Verify(digest types.Hash, signature []byte, key p256.PublicKey) bool {
	r, s, err := DecodeSignature(signature)
	if err != nil {
		v.logger.Debug("failed to decode signature", "err", err)
		metrics.IncrCounter([]string{verifierMetrics, "malformed_signature"}, 1)

		return false
	}

	if s.Cmp(p256.HalfN) > 0 {
		v.logger.Debug("rejecting non canonical signature", "digest", digest)
		metrics.IncrCounter([]string{verifierMetrics, "high_s"}, 1)

		return false
	}

	if !key.IsValid() {
		v.logger.Debug("public key is not a curve point", "key", key)
		metrics.IncrCounter([]string{verifierMetrics, "invalid_key"}, 1)

		return false
	}

	valid := v.backend.Verify(MessageHash(digest), r, s, key)
	if !valid {
		metrics.IncrCounter([]string{verifierMetrics, v.backend.Name(), "invalid"}, 1)

		return false
	}

	metrics.IncrCounter([]string{verifierMetrics, v.backend.Name(), "valid"}, 1)

	return true
}
