package whitelist

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command/whitelist/add"
	"github.com/0xPolygon/edge-modules/command/whitelist/remove"
	"github.com/0xPolygon/edge-modules/command/whitelist/show"
)

func GetCommand() *cobra.Command {
	whitelistCmd := &cobra.Command{
		Use:   "whitelist",
		Short: "Top level command for managing the swap endpoint whitelist. Only accepts subcommands",
	}

	registerSubcommands(whitelistCmd)

	return whitelistCmd
}

func registerSubcommands(baseCmd *cobra.Command) {
	baseCmd.AddCommand(
		add.GetCommand(),
		remove.GetCommand(),
		show.GetCommand(),
	)
}
