// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher for the taskstop operator CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/poruru/stop-server/internal/config"
	"github.com/poruru/stop-server/internal/interaction"
	"github.com/poruru/stop-server/internal/meta"
	"github.com/poruru/stop-server/internal/provisioner"
	"github.com/poruru/stop-server/internal/taskstop"
	"github.com/poruru/stop-server/internal/version"
	"github.com/sirupsen/logrus"
)

// StopService runs one stop request.
type StopService interface {
	Stop(ctx context.Context, serverName string) taskstop.Result
}

// ServerLister lists the records of the server list table.
type ServerLister interface {
	List(ctx context.Context) ([]taskstop.Record, error)
}

// TableProvisioner creates the server list table.
type TableProvisioner interface {
	EnsureServerTable(ctx context.Context, table string) (bool, error)
}

// Backend builds AWS-backed collaborators from the resolved configuration.
type Backend struct {
	Service     func(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (StopService, ServerLister, error)
	Provisioner func(ctx context.Context, cfg config.Config, out io.Writer) (TableProvisioner, error)
}

// Dependencies holds all injected dependencies required for CLI command execution.
type Dependencies struct {
	Out          io.Writer
	ErrOut       io.Writer
	Prompter     interaction.Prompter
	Interactive  func() bool
	PortResolver provisioner.PortResolver
	Backend      Backend
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	EnvFile    string `name:"env-file" help:"Path to .env file"`
	ConfigPath string `name:"config" short:"c" help:"Path to YAML config file"`
	Table      string `help:"Server list table (overrides SERVERLIST_TABLE)"`
	Cluster    string `help:"ECS cluster (overrides CLUSTER)"`
	Region     string `help:"AWS region"`
	Local      bool   `help:"Use the local DynamoDB published by docker compose"`
	LogLevel   string `name:"log-level" help:"Log level for service logs on stderr (default warn)"`

	Stop      StopCmd      `cmd:"" help:"Stop the task of a server"`
	Servers   ServersCmd   `cmd:"" help:"List servers and their tasks"`
	Provision ProvisionCmd `cmd:"" help:"Create the server list table if missing"`
	Init      InitCmd      `cmd:"" help:"Write a config file from the given flags"`
	Version   VersionCmd   `cmd:"" help:"Show version information"`
}

type (
	StopCmd struct {
		Server string `short:"s" help:"Server name (prompted when omitted on a terminal)"`
		JSON   bool   `name:"json" help:"Print the raw JSON result"`
	}
	ServersCmd   struct{}
	ProvisionCmd struct{}
	InitCmd      struct {
		Reason   string `help:"Reason sent with stop requests"`
		Endpoint string `name:"dynamodb-endpoint" help:"DynamoDB endpoint override"`
	}
	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments and dispatches to the matching
// handler. Returns 0 on success, 1 on error or failed stop.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Stop the running task of a server."),
		kong.Writers(out, out),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(out, err)
	}

	loadEnvFile(cli.EnvFile, out)

	if exitCode, handled := dispatchCommand(ctx.Command(), cli, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	handlers := map[string]commandHandler{
		"stop":      runStop,
		"servers":   runServers,
		"provision": runProvision,
		"init":      runInit,
		"version":   func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}
	if handler, ok := handlers[command]; ok {
		return handler(cli, deps, out), true
	}
	return 1, false
}

// loadEnvFile loads the given env file, or .env in the current directory.
// Existing environment variables win over file values.
func loadEnvFile(path string, out io.Writer) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(out, "Warning: failed to load env file %s: %v\n", path, err)
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(out, "Warning: failed to load .env: %v\n", err)
		}
	}
}

// cliLogLevel is the CLI default; file and environment settings take precedence.
const cliLogLevel = "warn"

// resolveConfig layers defaults, the config file, the environment, and flags.
func resolveConfig(ctx context.Context, cli CLI, deps Dependencies) (config.Config, error) {
	base := config.Default()
	base.LogLevel = cliLogLevel
	cfg, err := config.LoadLayeredFrom(base, cli.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg = config.Merge(cfg, config.Config{
		Table:    cli.Table,
		Cluster:  cli.Cluster,
		Region:   cli.Region,
		LogLevel: cli.LogLevel,
	})
	if cli.Local && strings.TrimSpace(cfg.DynamoDBEndpoint) == "" {
		if endpoint, ok := provisioner.LocalDynamoEndpoint(ctx, deps.PortResolver); ok {
			cfg.DynamoDBEndpoint = endpoint
		}
	}
	return cfg, nil
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	fmt.Fprintln(out, version.GetVersion())
	return 0
}

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}
