// Where: internal/provisioner/ports.go
// What: Port resolution for the local DynamoDB service.
// Why: Discover the published port when Docker Compose assigns it dynamically.
package provisioner

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"github.com/poruru/stop-server/internal/constants"
	"github.com/poruru/stop-server/internal/envutil"
	"github.com/poruru/stop-server/internal/meta"
)

const (
	composeProjectLabel = "com.docker.compose.project"
	composeServiceLabel = "com.docker.compose.service"
)

// DockerClient is the subset of the Docker SDK used for port discovery.
type DockerClient interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
}

// NewDockerClient constructs a Docker SDK client using environment defaults.
func NewDockerClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

type PortRequest struct {
	Project       string
	Service       string
	ContainerPort int
}

type PortResolver interface {
	Resolve(ctx context.Context, request PortRequest) (int, error)
}

// DockerPortResolver finds published ports of compose services.
type DockerPortResolver struct {
	Client DockerClient
}

func (r DockerPortResolver) Resolve(ctx context.Context, request PortRequest) (int, error) {
	if r.Client == nil {
		return 0, fmt.Errorf("docker client is nil")
	}
	if strings.TrimSpace(request.Project) == "" {
		return 0, fmt.Errorf("compose project is required")
	}
	if strings.TrimSpace(request.Service) == "" {
		return 0, fmt.Errorf("compose service is required")
	}
	if request.ContainerPort <= 0 {
		return 0, fmt.Errorf("container port is required")
	}

	labelFilter := filters.NewArgs()
	labelFilter.Add("label", fmt.Sprintf("%s=%s", composeProjectLabel, request.Project))

	containers, err := r.Client.ContainerList(ctx, container.ListOptions{
		Filters: labelFilter,
	})
	if err != nil {
		return 0, err
	}

	for _, ctr := range containers {
		if ctr.Labels == nil || ctr.Labels[composeProjectLabel] != request.Project {
			continue
		}
		if ctr.Labels[composeServiceLabel] != request.Service {
			continue
		}
		for _, port := range ctr.Ports {
			if int(port.PrivatePort) != request.ContainerPort {
				continue
			}
			if port.PublicPort > 0 {
				return int(port.PublicPort), nil
			}
		}
	}

	return 0, fmt.Errorf("published port not found for %s:%d", request.Service, request.ContainerPort)
}

// LocalDynamoEndpoint returns the endpoint of the local DynamoDB service.
// Order: TASKSTOP_PORT_DATABASE, the compose-published port, the default port.
func LocalDynamoEndpoint(ctx context.Context, resolver PortResolver) (string, bool) {
	project := strings.TrimSpace(envutil.GetHostEnv(constants.HostSuffixProject))
	if project == "" {
		project = meta.DefaultComposeProject
	}
	port, ok := resolvePort(
		ctx,
		envutil.HostEnvKey(constants.HostSuffixPortDatabase),
		meta.DefaultDatabasePort,
		PortRequest{Project: project, Service: meta.DatabaseService, ContainerPort: meta.DatabaseContainerPort},
		resolver,
	)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("http://localhost:%d", port), true
}

func resolvePort(
	ctx context.Context,
	envVar string,
	defaultPort int,
	request PortRequest,
	resolver PortResolver,
) (int, bool) {
	if raw, ok := envutil.Lookup(envVar); ok {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 {
			return port, true
		}
	}

	if resolver != nil {
		if resolved, err := resolver.Resolve(ctx, request); err == nil && resolved > 0 {
			return resolved, true
		}
	}
	if defaultPort > 0 {
		return defaultPort, true
	}
	return 0, false
}
