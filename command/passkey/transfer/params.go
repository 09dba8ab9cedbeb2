package transfer

import (
	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
	passkeyCommon "github.com/0xPolygon/edge-modules/command/passkey/common"
	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/server"
	"github.com/0xPolygon/edge-modules/types"
)

var (
	params = &transferParams{}
)

type transferParams struct {
	accountRaw  string
	namespaceID uint32
	xRaw        string
	yRaw        string
	coseRaw     string

	account types.Address
	key     p256.PublicKey
}

func (p *transferParams) initRawParams() error {
	var err error

	if p.account, err = helper.ParseAddress(p.accountRaw); err != nil {
		return err
	}

	p.key, err = helper.ParsePublicKey(p.xRaw, p.yRaw, p.coseRaw)

	return err
}

func (p *transferParams) transfer(srv *server.Server) error {
	return srv.Validator().Transfer(p.account, p.namespaceID, p.key)
}

func (p *transferParams) getResult() command.CommandResult {
	return passkeyCommon.NewCredentialResult("TRANSFERRED", p.account, p.namespaceID, p.key, true)
}
