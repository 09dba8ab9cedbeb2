package install

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
	passkeyCommon "github.com/0xPolygon/edge-modules/command/passkey/common"
)

func GetCommand() *cobra.Command {
	installCmd := &cobra.Command{
		Use:     "install",
		Short:   "Binds a passkey to the account in a namespace, replacing the bound one",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	passkeyCommon.RegisterCredentialFlags(installCmd, &params.accountRaw, &params.namespaceID)
	passkeyCommon.RegisterKeyFlags(installCmd, &params.xRaw, &params.yRaw, &params.coseRaw)

	return installCmd
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

	if err := params.install(srv); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}
