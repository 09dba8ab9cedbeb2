package remove

import (
	"github.com/0xPolygon/edge-modules/command"
	whitelistCommon "github.com/0xPolygon/edge-modules/command/whitelist/common"
	"github.com/0xPolygon/edge-modules/server"
)

var (
	params = &removeParams{}
)

type removeParams struct {
	whitelistCommon.UpdateParams

	result *whitelistCommon.WhitelistResult
}

func (p *removeParams) unwhitelistDex(srv *server.Server) error {
	executor := srv.Executor()

	if err := executor.UnwhitelistDex(p.Caller, p.Dex); err != nil {
		return err
	}

	p.result = &whitelistCommon.WhitelistResult{
		Action:     "REMOVE",
		AdminGated: executor.AdminGated(),
		Entries: []*whitelistCommon.EntryResult{
			{
				Address:     p.Dex,
				Role:        executor.Role(p.Dex).String(),
				Whitelisted: executor.IsWhitelisted(p.Dex),
			},
		},
	}

	return nil
}

func (p *removeParams) getResult() command.CommandResult {
	return p.result
}
