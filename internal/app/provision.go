// Where: internal/app/provision.go
// What: Provision and init command handlers.
// Why: Bootstrap the server list table and the CLI config file.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/poruru/stop-server/internal/config"
	"github.com/poruru/stop-server/internal/constants"
	"github.com/poruru/stop-server/internal/ui"
)

// runProvision executes the 'provision' command.
func runProvision(cli CLI, deps Dependencies, out io.Writer) int {
	if deps.Backend.Provisioner == nil {
		fmt.Fprintln(out, "provision: not implemented")
		return 1
	}
	ctx := context.Background()
	cfg, err := resolveConfig(ctx, cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	if strings.TrimSpace(cfg.Table) == "" {
		return exitWithError(out, fmt.Errorf("%s is required", constants.EnvServerListTable))
	}

	runner, err := deps.Backend.Provisioner(ctx, cfg, out)
	if err != nil {
		return exitWithError(out, err)
	}
	if _, err := runner.EnsureServerTable(ctx, cfg.Table); err != nil {
		return 1
	}
	return 0
}

// runInit executes the 'init' command, writing table and cluster settings
// to the config file.
func runInit(cli CLI, _ Dependencies, out io.Writer) int {
	cfg := config.Config{
		Table:            strings.TrimSpace(cli.Table),
		Cluster:          strings.TrimSpace(cli.Cluster),
		Region:           strings.TrimSpace(cli.Region),
		StopReason:       strings.TrimSpace(cli.Init.Reason),
		DynamoDBEndpoint: strings.TrimSpace(cli.Init.Endpoint),
	}
	if err := cfg.Validate(); err != nil {
		return exitWithError(out, err)
	}

	path := strings.TrimSpace(cli.ConfigPath)
	if path == "" {
		resolved, err := config.FilePath()
		if err != nil {
			return exitWithError(out, err)
		}
		path = resolved
	}
	if err := config.SaveFile(path, cfg); err != nil {
		return exitWithError(out, err)
	}

	console := ui.New(out)
	console.Success("Configuration saved")
	console.Item("Path", path)
	console.Item("Table", cfg.Table)
	console.Item("Cluster", cfg.Cluster)
	return 0
}
