package main

import (
	"fmt"
	"runtime"

	"github.com/itsatony/go-dice"
)

// VersionCmd prints version information
type VersionCmd struct {
	JSON bool `name:"json" help:"Print version information as JSON"`
}

// versionOutput represents JSON output for version
type versionOutput struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

func (c *VersionCmd) Run(app *appContext) error {
	if c.JSON {
		return writeJSON(app.stdout, versionOutput{
			Name:      CLIName,
			Version:   dice.Version,
			GoVersion: runtime.Version(),
		})
	}
	_, err := fmt.Fprintf(app.stdout, FmtVersion, CLIName, dice.Version, runtime.Version())
	return writeErr(err)
}
