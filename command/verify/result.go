package verify

import (
	"bytes"
	"fmt"

	"github.com/0xPolygon/edge-modules/command/helper"
	"github.com/0xPolygon/edge-modules/types"
)

type VerifyResult struct {
	Digest  types.Hash `json:"digest"`
	Key     string     `json:"key"`
	Backend string     `json:"backend"`
	Valid   bool       `json:"valid"`
}

func (r *VerifyResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[SIGNATURE VERIFICATION]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Digest|%s", r.Digest),
		fmt.Sprintf("Public key|%s", r.Key),
		fmt.Sprintf("Backend|%s", r.Backend),
		fmt.Sprintf("Valid|%t", r.Valid),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
