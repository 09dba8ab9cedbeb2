package version

import (
	"bytes"
	"fmt"

	"github.com/0xPolygon/edge-modules/command/helper"
)

type ModuleVersion struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type VersionResult struct {
	Version   string          `json:"version"`
	Commit    string          `json:"commit"`
	Branch    string          `json:"branch"`
	BuildTime string          `json:"buildTime"`
	Modules   []ModuleVersion `json:"modules"`
}

func (r *VersionResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[VERSION INFO]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Release version|%s", r.Version),
		fmt.Sprintf("Git branch|%s", r.Branch),
		fmt.Sprintf("Commit hash|%s", r.Commit),
		fmt.Sprintf("Build time|%s", r.BuildTime),
	}))

	modules := make([]string, len(r.Modules))
	for i, m := range r.Modules {
		modules[i] = fmt.Sprintf("%s|%s", m.Name, m.Version)
	}

	buffer.WriteString("\n\n[MODULES]\n")
	buffer.WriteString(helper.FormatKV(modules))
	buffer.WriteString("\n")

	return buffer.String()
}
