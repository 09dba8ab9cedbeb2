package create

import (
	"fmt"
	"math/big"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
	planCommon "github.com/0xPolygon/edge-modules/command/plan/common"
	"github.com/0xPolygon/edge-modules/server"
	"github.com/0xPolygon/edge-modules/types"
)

const (
	tokenInFlag  = "token-in"
	tokenOutFlag = "token-out"
	amountFlag   = "amount"
	intervalFlag = "interval"
)

var (
	params = &createParams{}
)

type createParams struct {
	tokenInRaw  string
	tokenOutRaw string
	amountRaw   string
	intervalRaw string

	tokenIn  types.Address
	tokenOut types.Address
	amount   *big.Int
	interval uint64

	plan *types.Plan
}

// initRawParams only parses the input, amount and interval are validated by the module
func (p *createParams) initRawParams() error {
	var err error

	if p.tokenIn, err = helper.ParseAddress(p.tokenInRaw); err != nil {
		return fmt.Errorf("invalid %s: %w", tokenInFlag, err)
	}

	if p.tokenOut, err = helper.ParseAddress(p.tokenOutRaw); err != nil {
		return fmt.Errorf("invalid %s: %w", tokenOutFlag, err)
	}

	if p.amount, err = helper.ParseUint256(p.amountRaw); err != nil {
		return fmt.Errorf("invalid %s: %w", amountFlag, err)
	}

	if p.interval, err = helper.ParseUint64(p.intervalRaw); err != nil {
		return fmt.Errorf("invalid %s: %w", intervalFlag, err)
	}

	return nil
}

func (p *createParams) createPlan(srv *server.Server) error {
	id, err := srv.Executor().CreatePlan(p.tokenIn, p.tokenOut, p.amount, p.interval)
	if err != nil {
		return err
	}

	p.plan, err = srv.Executor().Plan(id)

	return err
}

func (p *createParams) getResult() command.CommandResult {
	return planCommon.NewPlanResult(p.plan)
}
