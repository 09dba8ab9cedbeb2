package execute

import (
	"bytes"
	"fmt"

	"github.com/0xPolygon/edge-modules/command/helper"
	"github.com/0xPolygon/edge-modules/types"
)

type ExecuteResult struct {
	ExecutionID string        `json:"executionId"`
	PlanID      uint64        `json:"planId"`
	Dex         types.Address `json:"dex"`
	Timestamp   uint64        `json:"timestamp"`
	Allowance   string        `json:"allowance"`
	ReturnData  string        `json:"returnData"`
}

func (r *ExecuteResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString(fmt.Sprintf("\n[PLAN %d EXECUTED]\n", r.PlanID))
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Execution|%s", r.ExecutionID),
		fmt.Sprintf("Dex|%s", r.Dex),
		fmt.Sprintf("Timestamp|%d", r.Timestamp),
		fmt.Sprintf("Allowance granted|%s", r.Allowance),
		fmt.Sprintf("Return data|%s", r.ReturnData),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
