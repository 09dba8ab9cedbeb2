package show

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
	params = &showParams{}
)

type showParams struct {
	// zero selects every plan
	planID uint64

	plans []*types.Plan
}

func (p *showParams) readPlans(srv *server.Server) error {
	if p.planID != 0 {
		plan, err := srv.Executor().Plan(p.planID)
		if err != nil {
			return err
		}

		p.plans = []*types.Plan{plan}

		return nil
	}

	var err error

	p.plans, err = srv.Executor().Plans()

	return err
}

func (p *showParams) getResult() command.CommandResult {
	if p.planID != 0 {
		return planCommon.NewPlanResult(p.plans[0])
	}

	res := &planCommon.PlansResult{
		Plans: make([]*planCommon.PlanResult, len(p.plans)),
	}

	for i, plan := range p.plans {
		res.Plans[i] = planCommon.NewPlanResult(plan)
	}

	return res
}
