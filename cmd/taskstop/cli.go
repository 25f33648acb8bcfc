// Where: cmd/taskstop/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"context"
	"io"
	"os"

	"github.com/poruru/stop-server/internal/app"
	"github.com/poruru/stop-server/internal/config"
	"github.com/poruru/stop-server/internal/interaction"
	"github.com/poruru/stop-server/internal/provisioner"
	"github.com/poruru/stop-server/internal/wire"
	"github.com/sirupsen/logrus"
)

var newDockerClient = func() (provisioner.DockerClient, error) {
	return provisioner.NewDockerClient()
}

// buildDependencies constructs the runtime dependencies of the CLI.
// A missing Docker daemon only disables compose port discovery.
func buildDependencies() (app.Dependencies, io.Closer) {
	deps := app.Dependencies{
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
		Prompter: interaction.HuhPrompter{},
		Interactive: func() bool {
			return interaction.IsTerminal(os.Stdin) && interaction.IsTerminal(os.Stdout)
		},
		Backend: app.Backend{
			Service:     buildService,
			Provisioner: buildProvisioner,
		},
	}

	client, err := newDockerClient()
	if err != nil || client == nil {
		return deps, nil
	}
	deps.PortResolver = provisioner.DockerPortResolver{Client: client}
	return deps, asCloser(client)
}

func buildService(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (app.StopService, app.ServerLister, error) {
	svc, servers, err := wire.Service(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return svc, servers, nil
}

func buildProvisioner(ctx context.Context, cfg config.Config, out io.Writer) (app.TableProvisioner, error) {
	runner, err := wire.Provisioner(ctx, cfg, out)
	if err != nil {
		return nil, err
	}
	return runner, nil
}

// asCloser attempts to cast the Docker client to an io.Closer.
// Returns nil if the client does not implement the Closer interface.
func asCloser(client provisioner.DockerClient) io.Closer {
	if closer, ok := client.(io.Closer); ok {
		return closer
	}
	return nil
}
