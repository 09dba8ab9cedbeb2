package cancel

import (
	"github.com/0xPolygon/edge-modules/command"
	planCommon "github.com/0xPolygon/edge-modules/command/plan/common"
	"github.com/0xPolygon/edge-modules/server"
	"github.com/0xPolygon/edge-modules/types"
)

const (
	idFlag = "id"
)

var (
	params = &cancelParams{}
)

type cancelParams struct {
	planID uint64

	plan *types.Plan
}

func (p *cancelParams) cancelPlan(srv *server.Server) error {
	if err := srv.Executor().CancelPlan(p.planID); err != nil {
		return err
	}

	var err error

	p.plan, err = srv.Executor().Plan(p.planID)

	return err
}

func (p *cancelParams) getResult() command.CommandResult {
	return planCommon.NewPlanResult(p.plan)
}
