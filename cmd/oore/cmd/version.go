package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Show the oore CLI version and build time.",
		Usage: "oore version",
		Run: func(app *App, args []string) error {
			printVersion(app.Out)
			return nil
		},
		Bare: true,
	})
}
