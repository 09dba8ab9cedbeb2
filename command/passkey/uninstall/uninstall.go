package uninstall

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
	passkeyCommon "github.com/0xPolygon/edge-modules/command/passkey/common"
)

func GetCommand() *cobra.Command {
	uninstallCmd := &cobra.Command{
		Use:     "uninstall",
		Short:   "Removes the passkey bound to the account in a namespace",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	passkeyCommon.RegisterCredentialFlags(uninstallCmd, &params.accountRaw, &params.namespaceID)

	return uninstallCmd
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

	if err := params.uninstall(srv); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}
