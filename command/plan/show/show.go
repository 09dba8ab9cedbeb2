package show

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
)

func GetCommand() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Displays a plan, or every plan when no id is given",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}

	showCmd.Flags().Uint64Var(
		&params.planID,
		idFlag,
		0,
		"the id of the plan",
	)

	return showCmd
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

	if err := params.readPlans(srv); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}
