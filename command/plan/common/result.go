package common

import (
	"bytes"
	"fmt"
	"time"

	"github.com/0xPolygon/edge-modules/command/helper"
	"github.com/0xPolygon/edge-modules/types"
)

// PlanResult is the printable form of a plan
type PlanResult struct {
	ID                uint64        `json:"id"`
	TokenIn           types.Address `json:"tokenIn"`
	TokenOut          types.Address `json:"tokenOut"`
	Amount            string        `json:"amount"`
	Interval          uint64        `json:"interval"`
	LastExecutionTime uint64        `json:"lastExecutionTime"`
	NextExecutionTime uint64        `json:"nextExecutionTime"`
	Active            bool          `json:"active"`
}

func NewPlanResult(plan *types.Plan) *PlanResult {
	return &PlanResult{
		ID:                plan.ID,
		TokenIn:           plan.TokenIn,
		TokenOut:          plan.TokenOut,
		Amount:            plan.Amount.String(),
		Interval:          plan.Interval,
		LastExecutionTime: plan.LastExecutionTime,
		NextExecutionTime: plan.NextExecutionTime(),
		Active:            plan.Active,
	}
}

func (r *PlanResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString(fmt.Sprintf("\n[PLAN %d]\n", r.ID))
	r.writeTo(&buffer)
	buffer.WriteString("\n")

	return buffer.String()
}

func (r *PlanResult) writeTo(buffer *bytes.Buffer) {
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Token in|%s", r.TokenIn),
		fmt.Sprintf("Token out|%s", r.TokenOut),
		fmt.Sprintf("Amount|%s", r.Amount),
		fmt.Sprintf("Interval|%s", time.Duration(r.Interval)*time.Second),
		fmt.Sprintf("Last execution|%s", formatTimestamp(r.LastExecutionTime)),
		fmt.Sprintf("Next execution|%s", formatTimestamp(r.NextExecutionTime)),
		fmt.Sprintf("Active|%t", r.Active),
	}))
}

// PlansResult lists several plans
type PlansResult struct {
	Plans []*PlanResult `json:"plans"`
}

func (r *PlansResult) GetOutput() string {
	var buffer bytes.Buffer

	if len(r.Plans) == 0 {
		buffer.WriteString("\n[PLANS]\n")
		buffer.WriteString("No plans found\n")

		return buffer.String()
	}

	for _, plan := range r.Plans {
		buffer.WriteString(fmt.Sprintf("\n[PLAN %d]\n", plan.ID))
		plan.writeTo(&buffer)
		buffer.WriteString("\n")
	}

	return buffer.String()
}

func formatTimestamp(ts uint64) string {
	return fmt.Sprintf("%d (%s)", ts, time.Unix(int64(ts), 0).UTC().Format(time.RFC3339))
}
