package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command/helper"
	"github.com/0xPolygon/edge-modules/command/passkey"
	"github.com/0xPolygon/edge-modules/command/plan"
	"github.com/0xPolygon/edge-modules/command/verify"
	"github.com/0xPolygon/edge-modules/command/version"
	"github.com/0xPolygon/edge-modules/command/whitelist"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Use:   "edge-modules",
			Short: "Edge modules manages passkey credentials and recurring swap plans of modular accounts",
		},
	}

	helper.RegisterJSONOutputFlag(rootCommand.baseCmd)
	helper.RegisterRuntimeFlags(rootCommand.baseCmd)

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		version.GetCommand(),
		verify.GetCommand(),
		passkey.GetCommand(),
		plan.GetCommand(),
		whitelist.GetCommand(),
	)
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
