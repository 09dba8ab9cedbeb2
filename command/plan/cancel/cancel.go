package cancel

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
)

func GetCommand() *cobra.Command {
	cancelCmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancels a plan, cancelled plans can never execute again",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}

	cancelCmd.Flags().Uint64Var(
		&params.planID,
		idFlag,
		0,
		"the id of the plan",
	)

	_ = cancelCmd.MarkFlagRequired(idFlag)

	return cancelCmd
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

	if err := params.cancelPlan(srv); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}
