package show

import (
	"fmt"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
	whitelistCommon "github.com/0xPolygon/edge-modules/command/whitelist/common"
	"github.com/0xPolygon/edge-modules/server"
	"github.com/0xPolygon/edge-modules/types"
)

const (
	addressFlag = "address"
)

var (
	params = &showParams{}
)

type showParams struct {
	addressesRaw []string

	addresses []types.Address

	result *whitelistCommon.WhitelistResult
}

func (p *showParams) initRawParams() error {
	p.addresses = make([]types.Address, len(p.addressesRaw))

	for i, raw := range p.addressesRaw {
		addr, err := helper.ParseAddress(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", addressFlag, err)
		}

		p.addresses[i] = addr
	}

	return nil
}

func (p *showParams) readRoles(srv *server.Server) {
	executor := srv.Executor()

	p.result = &whitelistCommon.WhitelistResult{
		AdminGated: executor.AdminGated(),
		Entries:    make([]*whitelistCommon.EntryResult, len(p.addresses)),
	}

	for i, addr := range p.addresses {
		p.result.Entries[i] = &whitelistCommon.EntryResult{
			Address:     addr,
			Role:        executor.Role(addr).String(),
			Whitelisted: executor.IsWhitelisted(addr),
		}
	}
}

func (p *showParams) getResult() command.CommandResult {
	return p.result
}
