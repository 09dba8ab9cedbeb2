package passkey

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command/passkey/install"
	"github.com/0xPolygon/edge-modules/command/passkey/show"
	"github.com/0xPolygon/edge-modules/command/passkey/transfer"
	"github.com/0xPolygon/edge-modules/command/passkey/uninstall"
)

func GetCommand() *cobra.Command {
	passkeyCmd := &cobra.Command{
		Use:   "passkey",
		Short: "Top level command for managing the passkeys bound to an account. Only accepts subcommands",
	}

	registerSubcommands(passkeyCmd)

	return passkeyCmd
}

func registerSubcommands(baseCmd *cobra.Command) {
	baseCmd.AddCommand(
		install.GetCommand(),
		transfer.GetCommand(),
		uninstall.GetCommand(),
		show.GetCommand(),
	)
}
