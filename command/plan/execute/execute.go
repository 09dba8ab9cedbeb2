package execute

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
)

func GetCommand() *cobra.Command {
	executeCmd := &cobra.Command{
		Use:     "execute",
		Short:   "Executes a due plan through a whitelisted dex. Needs a node, see --json-rpc",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	setFlags(executeCmd)

	return executeCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(
		&params.planID,
		idFlag,
		0,
		"the id of the plan",
	)

	cmd.Flags().StringVar(
		&params.dexRaw,
		dexFlag,
		"",
		"the whitelisted dex receiving the allowance and the swap call",
	)

	cmd.Flags().StringVar(
		&params.payloadRaw,
		payloadFlag,
		"0x",
		"the hex encoded swap call sent to the dex",
	)

	_ = cmd.MarkFlagRequired(idFlag)
	_ = cmd.MarkFlagRequired(dexFlag)
}

func runPreRun(_ *cobra.Command, _ []string) error {
	return params.initRawParams()
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	srv, err := helper.NewServer(cmd)
	if err != nil {
		outputter.SetError(err)

		return
	}

	defer srv.Close()

	if err := params.executePlan(srv); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}
