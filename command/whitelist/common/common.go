package common

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command/helper"
	"github.com/0xPolygon/edge-modules/types"
)

const (
	DexFlag    = "dex"
	CallerFlag = "caller"
)

// UpdateParams are the inputs of a whitelist change
type UpdateParams struct {
	DexRaw    string
	CallerRaw string

	Dex    types.Address
	Caller types.Address
}

func (p *UpdateParams) SetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&p.DexRaw,
		DexFlag,
		"",
		"the swap endpoint address",
	)

	cmd.Flags().StringVar(
		&p.CallerRaw,
		CallerFlag,
		types.ZeroAddress.String(),
		"the account making the change, must be a list admin when admins are configured",
	)

	_ = cmd.MarkFlagRequired(DexFlag)
}

func (p *UpdateParams) InitRawParams() error {
	var err error

	if p.Dex, err = helper.ParseAddress(p.DexRaw); err != nil {
		return fmt.Errorf("invalid %s: %w", DexFlag, err)
	}

	if p.Caller, err = helper.ParseAddress(p.CallerRaw); err != nil {
		return fmt.Errorf("invalid %s: %w", CallerFlag, err)
	}

	return nil
}

// WhitelistResult describes the whitelist status of endpoints
type WhitelistResult struct {
	Action     string         `json:"action,omitempty"`
	AdminGated bool           `json:"adminGated"`
	Entries    []*EntryResult `json:"entries"`
}

type EntryResult struct {
	Address     types.Address `json:"address"`
	Role        string        `json:"role"`
	Whitelisted bool          `json:"whitelisted"`
}

func (r *WhitelistResult) GetOutput() string {
	var buffer bytes.Buffer

	if r.Action != "" {
		buffer.WriteString(fmt.Sprintf("\n[WHITELIST %s]\n", r.Action))
	} else {
		buffer.WriteString("\n[WHITELIST]\n")
	}

	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Admin gated|%t", r.AdminGated),
	}))

	if len(r.Entries) > 0 {
		entries := make([]string, 0, len(r.Entries)+1)
		entries = append(entries, "Address|Role|Whitelisted")

		for _, e := range r.Entries {
			entries = append(entries, fmt.Sprintf("%s|%s|%t", e.Address, e.Role, e.Whitelisted))
		}

		buffer.WriteString("\n\n")
		buffer.WriteString(helper.FormatList(entries))
	}

	buffer.WriteString("\n")

	return buffer.String()
}
