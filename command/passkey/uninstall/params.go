package uninstall

import (
	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
	passkeyCommon "github.com/0xPolygon/edge-modules/command/passkey/common"
	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/server"
	"github.com/0xPolygon/edge-modules/types"
)

var (
	params = &uninstallParams{}
)

type uninstallParams struct {
	accountRaw  string
	namespaceID uint32

	account types.Address
}

func (p *uninstallParams) initRawParams() error {
	var err error

	p.account, err = helper.ParseAddress(p.accountRaw)

	return err
}

func (p *uninstallParams) uninstall(srv *server.Server) error {
	return srv.Validator().Uninstall(p.account, p.namespaceID)
}

func (p *uninstallParams) getResult() command.CommandResult {
	return passkeyCommon.NewCredentialResult("UNINSTALLED", p.account, p.namespaceID, p256.PublicKey{}, false)
}
