package verify

import (
	"errors"
	"fmt"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/helper/hex"
	"github.com/0xPolygon/edge-modules/server"
	"github.com/0xPolygon/edge-modules/types"
)

const (
	digestFlag    = "digest"
	signatureFlag = "signature"
	xFlag         = "x"
	yFlag         = "y"
	coseFlag      = "cose"
	accountFlag   = "account"
	namespaceFlag = "namespace"
)

var (
	params = &verifyParams{}

	errInvalidDigest = errors.New("digest must be 32 bytes")
	errNoCredential  = errors.New("no credential bound")
)

type verifyParams struct {
	digestRaw    string
	signatureRaw string
	xRaw         string
	yRaw         string
	coseRaw      string
	accountRaw   string
	namespaceID  uint32

	digest    types.Hash
	signature []byte
	account   *types.Address
	key       p256.PublicKey

	valid   bool
	backend string
}

func (p *verifyParams) initRawParams() error {
	p.account = nil
	p.key = p256.PublicKey{}
	p.valid = false
	p.backend = ""

	digest, err := hex.DecodeHex(p.digestRaw)
	if err != nil {
		return fmt.Errorf("invalid digest: %w", err)
	}

	if len(digest) != types.HashLength {
		return errInvalidDigest
	}

	p.digest = types.BytesToHash(digest)

	// malformed signatures are a negative result, not an error
	p.signature, err = hex.DecodeHex(p.signatureRaw)
	if err != nil {
		return fmt.Errorf("invalid signature encoding: %w", err)
	}

	if p.accountRaw != "" {
		account, err := helper.ParseAddress(p.accountRaw)
		if err != nil {
			return err
		}

		p.account = &account

		return nil
	}

	p.key, err = helper.ParsePublicKey(p.xRaw, p.yRaw, p.coseRaw)

	return err
}

func (p *verifyParams) verify(srv *server.Server) error {
	if p.account != nil {
		key, ok := srv.Validator().Credential(p.namespaceID, *p.account)
		if !ok {
			return fmt.Errorf("%w: account %s, namespace %d", errNoCredential, *p.account, p.namespaceID)
		}

		p.key = key
	}

	p.valid = srv.Verifier().Verify(p.digest, p.signature, p.key)
	p.backend = srv.Verifier().Backend()

	return nil
}

func (p *verifyParams) getResult() command.CommandResult {
	return &VerifyResult{
		Digest:  p.digest,
		Key:     p.key.String(),
		Backend: p.backend,
		Valid:   p.valid,
	}
}
