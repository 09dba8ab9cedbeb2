package command

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type JSONOutput struct {
	commonOutputFormatter
}

func (jo *JSONOutput) WriteOutput() {
	if jo.errorOutput != nil {
		_, _ = fmt.Fprintln(jo.stderr, jo.getErrorOutput())

		return
	}

	_, _ = fmt.Fprintln(jo.stdout, jo.getCommandOutput())
}

func newJSONOutput(cmd *cobra.Command) *JSONOutput {
	return &JSONOutput{
		commonOutputFormatter: newCommonOutputFormatter(cmd),
	}
}

func (jo *JSONOutput) getErrorOutput() string {
	return marshalJSONToString(
		struct {
			Err string `json:"error"`
		}{
			Err: jo.errorOutput.Error(),
		},
	)
}

func (jo *JSONOutput) getCommandOutput() string {
	return marshalJSONToString(jo.commandOutput)
}

func marshalJSONToString(input interface{}) string {
	bytes, err := json.Marshal(input)
	if err != nil {
		return err.Error()
	}

	return string(bytes)
}
