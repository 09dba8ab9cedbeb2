package show

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
)

func GetCommand() *cobra.Command {
	showCmd := &cobra.Command{
		Use:     "show",
		Short:   "Displays the whitelist roles of the given addresses",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	showCmd.Flags().StringArrayVar(
		&params.addressesRaw,
		addressFlag,
		[]string{},
		"the address to look up, can be repeated",
	)

	return showCmd
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

	params.readRoles(srv)

	outputter.SetCommandResult(params.getResult())
}
