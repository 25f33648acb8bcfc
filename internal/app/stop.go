// Where: internal/app/stop.go
// What: Stop and servers command handlers.
// Why: Drive the stop service from a terminal with the same semantics as the Lambda.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/poruru/stop-server/internal/interaction"
	"github.com/poruru/stop-server/internal/logging"
	"github.com/poruru/stop-server/internal/taskstop"
	"github.com/poruru/stop-server/internal/ui"
)

// runStop executes the 'stop' command. The exit code reflects Result.Success.
func runStop(cli CLI, deps Dependencies, out io.Writer) int {
	if deps.Backend.Service == nil {
		fmt.Fprintln(out, "stop: not implemented")
		return 1
	}
	ctx := context.Background()
	svc, lister, err := buildService(ctx, cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	console := ui.New(out)
	server := cli.Stop.Server
	if strings.TrimSpace(server) == "" && deps.Interactive != nil && deps.Interactive() {
		server = selectServer(ctx, lister, deps.Prompter, console)
	}

	result := svc.Stop(ctx, server)
	if cli.Stop.JSON {
		payload, err := json.Marshal(result)
		if err != nil {
			return exitWithError(out, err)
		}
		fmt.Fprintln(out, string(payload))
	} else if result.Success {
		console.Success(result.Message)
	} else {
		console.Failure(result.Message)
	}

	if !result.Success {
		return 1
	}
	return 0
}

// runServers executes the 'servers' command.
func runServers(cli CLI, deps Dependencies, out io.Writer) int {
	if deps.Backend.Service == nil {
		fmt.Fprintln(out, "servers: not implemented")
		return 1
	}
	ctx := context.Background()
	_, lister, err := buildService(ctx, cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	records, err := lister.List(ctx)
	if err != nil {
		return exitWithError(out, err)
	}

	console := ui.New(out)
	if len(records) == 0 {
		console.Info("No servers registered")
		return 0
	}
	console.Header("🖥 ", "Servers:")
	for _, record := range records {
		task := "-"
		if record.HasTask() {
			task = record.Task
		}
		console.Item(record.Name, task)
	}
	return 0
}

func buildService(ctx context.Context, cli CLI, deps Dependencies) (StopService, ServerLister, error) {
	cfg, err := resolveConfig(ctx, cli, deps)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	errOut := deps.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: "text"}, errOut)
	if err != nil {
		return nil, nil, err
	}
	return deps.Backend.Service(ctx, cfg, logger)
}

// selectServer prompts for one of the servers that has a running task.
// It returns "" when nothing can be selected.
func selectServer(
	ctx context.Context,
	lister ServerLister,
	prompter interaction.Prompter,
	console *ui.Console,
) string {
	if lister == nil || prompter == nil {
		return ""
	}
	records, err := lister.List(ctx)
	if err != nil {
		console.Info(fmt.Sprintf("Could not list servers: %v", err))
		return ""
	}

	options := make([]interaction.SelectOption, 0, len(records))
	for _, record := range records {
		if !record.HasTask() {
			continue
		}
		options = append(options, interaction.SelectOption{
			Label: fmt.Sprintf("%s (%s)", record.Name, shortTaskID(record.Task)),
			Value: record.Name,
		})
	}
	if len(options) == 0 {
		console.Info("No servers with a running task")
		return ""
	}

	selected, err := prompter.SelectValue("Select server to stop", options)
	if err != nil {
		console.Info(fmt.Sprintf("Selection cancelled: %v", err))
		return ""
	}
	return selected
}

// shortTaskID returns the trailing id of a task ARN.
func shortTaskID(task string) string {
	if idx := strings.LastIndex(task, "/"); idx >= 0 && idx < len(task)-1 {
		return task[idx+1:]
	}
	return task
}

var _ StopService = (*taskstop.Service)(nil)
