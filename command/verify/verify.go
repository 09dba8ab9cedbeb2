package verify

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
)

func GetCommand() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:     "verify",
		Short:   "Verifies a P256 signature of a digest against a passkey",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	setFlags(verifyCmd)

	return verifyCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&params.digestRaw,
		digestFlag,
		"",
		"the 32 byte digest that was signed, before the SHA-256 step",
	)

	cmd.Flags().StringVar(
		&params.signatureRaw,
		signatureFlag,
		"",
		"the hex encoded signature (r || s)",
	)

	cmd.Flags().StringVar(
		&params.xRaw,
		xFlag,
		"",
		"the x coordinate of the public key",
	)

	cmd.Flags().StringVar(
		&params.yRaw,
		yFlag,
		"",
		"the y coordinate of the public key",
	)

	cmd.Flags().StringVar(
		&params.coseRaw,
		coseFlag,
		"",
		"the hex encoded COSE_Key of the passkey",
	)

	cmd.Flags().StringVar(
		&params.accountRaw,
		accountFlag,
		"",
		"verify against the credential bound to this account",
	)

	cmd.Flags().Uint32Var(
		&params.namespaceID,
		namespaceFlag,
		0,
		"the namespace of the bound credential",
	)

	_ = cmd.MarkFlagRequired(digestFlag)
	_ = cmd.MarkFlagRequired(signatureFlag)

	cmd.MarkFlagsMutuallyExclusive(accountFlag, xFlag)
	cmd.MarkFlagsMutuallyExclusive(accountFlag, coseFlag)
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

	if err := params.verify(srv); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}
