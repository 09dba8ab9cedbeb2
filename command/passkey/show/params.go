package show

import (
	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
	passkeyCommon "github.com/0xPolygon/edge-modules/command/passkey/common"
	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/server"
	"github.com/0xPolygon/edge-modules/types"
)

var (
	params = &showParams{}
)

type showParams struct {
	accountRaw  string
	namespaceID uint32

	account types.Address
	key     p256.PublicKey
	bound   bool
}

func (p *showParams) initRawParams() error {
	var err error

	p.account, err = helper.ParseAddress(p.accountRaw)

	return err
}

func (p *showParams) readCredential(srv *server.Server) {
	p.key, p.bound = srv.Validator().Credential(p.namespaceID, p.account)
}

func (p *showParams) getResult() command.CommandResult {
	return passkeyCommon.NewCredentialResult("", p.account, p.namespaceID, p.key, p.bound)
}
