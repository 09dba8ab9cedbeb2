package show

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
	passkeyCommon "github.com/0xPolygon/edge-modules/command/passkey/common"
)

func GetCommand() *cobra.Command {
	showCmd := &cobra.Command{
		Use:     "show",
		Short:   "Displays the passkey bound to the account in a namespace",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	passkeyCommon.RegisterCredentialFlags(showCmd, &params.accountRaw, &params.namespaceID)

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

	params.readCredential(srv)

	outputter.SetCommandResult(params.getResult())
}
