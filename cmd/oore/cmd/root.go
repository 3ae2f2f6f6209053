// Package cmd implements the oore CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (slots, state, config, version).
package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-drift/oore/cmd/oore/internal/config"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(app *App, args []string) error
	// Bare commands run without resolving configuration.
	Bare bool
}

// App carries what a command needs from the root: output streams, the
// resolved configuration, and global flags.
type App struct {
	Out    io.Writer
	Err    io.Writer
	Config *config.Resolved
	JSON   bool
}

var rootCmd = &Command{
	Name:  "oore",
	Short: "oore - class-styled logic, clean state and slots for hook components",
	Long: `oore runs slot resolution and state container scenarios described in
YAML fixtures, printing what a component would see on each render.

Use "oore <command> --help" for more information about a command.`,
	Usage: "oore [flags] <command> [args]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

type globalFlags struct {
	configPath string
	production bool
	verbose    bool
	json       bool
}

// Run parses global flags, resolves configuration and dispatches args to a
// registered command.
func Run(args []string, stdout, stderr io.Writer) error {
	var flags globalFlags
	var filtered []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filtered) == 0 {
				printHelp(stdout)
				return nil
			}
			filtered = append(filtered, arg)
		case "-v", "--version":
			if len(filtered) == 0 {
				printVersion(stdout)
				return nil
			}
			filtered = append(filtered, arg)
		case "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			flags.configPath = args[i+1]
			i++
		case "--production":
			flags.production = true
		case "--verbose":
			flags.verbose = true
		case "--json":
			flags.json = true
		default:
			if strings.HasPrefix(arg, "--config=") {
				flags.configPath = strings.TrimPrefix(arg, "--config=")
				continue
			}
			filtered = append(filtered, arg)
		}
	}
	args = filtered

	if len(args) == 0 {
		printHelp(stdout)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(stderr)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(stdout, cmd)
			return nil
		}
	}

	app := &App{Out: stdout, Err: stderr, JSON: flags.json}
	if cmd.Bare {
		return cmd.Run(app, cmdArgs)
	}

	resolved, err := resolveConfig(flags)
	if err != nil {
		return err
	}
	app.Config = resolved

	restore, err := setupDiagnostics(resolved, stderr)
	if err != nil {
		return err
	}
	defer restore()

	return cmd.Run(app, cmdArgs)
}

func resolveConfig(flags globalFlags) (*config.Resolved, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	resolved, err := config.Resolve(config.FindProjectRoot(wd), flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.production {
		resolved.Mode = config.ModeProduction
	}
	if flags.verbose {
		resolved.Verbose = true
	}
	return resolved, nil
}

func sortedCommands() []*Command {
	cmds := make([]*Command, 0, len(commands))
	for _, cmd := range commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "oore version %s (built %s)\n", Version, BuildTime)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, rootCmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range sortedCommands() {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --config FILE        Read configuration from FILE (default: ./oore.yaml)")
	fmt.Fprintln(w, "  --production         Suppress advisory diagnostics")
	fmt.Fprintln(w, "  --verbose            Log reports with stack traces")
	fmt.Fprintln(w, "  --json               Print results as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %-20s Diagnostics mode override (development or production)\n", config.ModeEnv)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  oore slots layout.yaml        Partition fixture children into slots")
	fmt.Fprintln(w, "  oore state counter.yaml       Replay state updates render by render")
	fmt.Fprintln(w, "  oore --json config            Show resolved configuration")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}
