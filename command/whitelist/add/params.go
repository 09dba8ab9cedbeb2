package add

import (
	"github.com/0xPolygon/edge-modules/command"
	whitelistCommon "github.com/0xPolygon/edge-modules/command/whitelist/common"
	"github.com/0xPolygon/edge-modules/server"
)

var (
	params = &addParams{}
)

type addParams struct {
	whitelistCommon.UpdateParams

	result *whitelistCommon.WhitelistResult
}

func (p *addParams) whitelistDex(srv *server.Server) error {
	executor := srv.Executor()

	if err := executor.WhitelistDex(p.Caller, p.Dex); err != nil {
		return err
	}

	p.result = &whitelistCommon.WhitelistResult{
		Action:     "ADD",
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

func (p *addParams) getResult() command.CommandResult {
	return p.result
}
