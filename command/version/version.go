package version

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/modules/automation"
	"github.com/0xPolygon/edge-modules/modules/passkey"
	"github.com/0xPolygon/edge-modules/versioning"
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Returns the current version and the versions of the modules",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	outputter.SetCommandResult(
		&VersionResult{
			Version:   versioning.String(),
			Commit:    versioning.Commit,
			Branch:    versioning.Branch,
			BuildTime: versioning.BuildTime,
			Modules: []ModuleVersion{
				{Name: passkey.ModuleName, Version: passkey.ModuleVersion},
				{Name: automation.ModuleName, Version: automation.ModuleVersion},
			},
		},
	)
}
