package cmd

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Show resolved configuration",
		Long: `Show the configuration oore runs with.

Values come from oore.yaml in the project root (or the file given with
--config), then the OORE_MODE environment variable, then the --production
and --verbose flags.`,
		Usage: "oore config",
		Run:   runConfig,
	})
}

func runConfig(app *App, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("config takes no arguments")
	}
	if app.JSON {
		return writeJSON(app.Out, app.Config)
	}
	data, err := yaml.Marshal(app.Config)
	if err != nil {
		return err
	}
	_, err = app.Out.Write(data)
	return err
}
