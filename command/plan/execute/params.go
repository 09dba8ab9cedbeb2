package execute

import (
	"fmt"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
	"github.com/0xPolygon/edge-modules/helper/hex"
	"github.com/0xPolygon/edge-modules/modules/automation"
	"github.com/0xPolygon/edge-modules/server"
	"github.com/0xPolygon/edge-modules/types"
)

const (
	idFlag      = "id"
	dexFlag     = "dex"
	payloadFlag = "payload"
)

var (
	params = &executeParams{}
)

type executeParams struct {
	planID     uint64
	dexRaw     string
	payloadRaw string

	dex     types.Address
	payload []byte

	execution *automation.Execution
}

func (p *executeParams) initRawParams() error {
	p.execution = nil

	dex, err := helper.ParseAddress(p.dexRaw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", dexFlag, err)
	}

	p.dex = dex

	p.payload, err = hex.DecodeHex(p.payloadRaw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", payloadFlag, err)
	}

	return nil
}

func (p *executeParams) executePlan(srv *server.Server) error {
	execution, err := srv.Executor().ExecutePlan(p.planID, p.dex, p.payload)
	if err != nil {
		return err
	}

	p.execution = execution

	return nil
}

func (p *executeParams) getResult() command.CommandResult {
	return &ExecuteResult{
		ExecutionID: p.execution.ID,
		PlanID:      p.execution.PlanID,
		Dex:         p.execution.Dex,
		Timestamp:   p.execution.Timestamp,
		Allowance:   p.execution.Allowance.String(),
		ReturnData:  hex.EncodeToHex(p.execution.ReturnData),
	}
}
