package plan

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command/plan/cancel"
	"github.com/0xPolygon/edge-modules/command/plan/create"
	"github.com/0xPolygon/edge-modules/command/plan/execute"
	"github.com/0xPolygon/edge-modules/command/plan/show"
)

func GetCommand() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Top level command for managing recurring swap plans. Only accepts subcommands",
	}

	registerSubcommands(planCmd)

	return planCmd
}

func registerSubcommands(baseCmd *cobra.Command) {
	baseCmd.AddCommand(
		create.GetCommand(),
		execute.GetCommand(),
		cancel.GetCommand(),
		show.GetCommand(),
	)
}
