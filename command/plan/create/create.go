package create

import (
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/helper"
)

func GetCommand() *cobra.Command {
	createCmd := &cobra.Command{
		Use:     "create",
		Short:   "Creates a recurring swap plan",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	setFlags(createCmd)

	return createCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&params.tokenInRaw,
		tokenInFlag,
		"",
		"the token sold on every execution",
	)

	cmd.Flags().StringVar(
		&params.tokenOutRaw,
		tokenOutFlag,
		"",
		"the token bought on every execution",
	)

	cmd.Flags().StringVar(
		&params.amountRaw,
		amountFlag,
		"",
		"the amount of token in granted to the swap endpoint on every execution",
	)

	cmd.Flags().StringVar(
		&params.intervalRaw,
		intervalFlag,
		"",
		"the minimum number of seconds between two executions",
	)

	for _, flag := range []string{tokenInFlag, tokenOutFlag, amountFlag, intervalFlag} {
		_ = cmd.MarkFlagRequired(flag)
	}
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

	if err := params.createPlan(srv); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}
