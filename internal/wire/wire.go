// Where: internal/wire/wire.go
// What: Dependency wiring for the Lambda entrypoint and the CLI.
// Why: Build AWS-backed collaborators once and hand them to the stop service.
package wire

import (
	"context"
	"fmt"
	"io"

	"github.com/poruru/stop-server/internal/awsclient"
	"github.com/poruru/stop-server/internal/cluster"
	"github.com/poruru/stop-server/internal/config"
	"github.com/poruru/stop-server/internal/provisioner"
	"github.com/poruru/stop-server/internal/store"
	"github.com/poruru/stop-server/internal/taskstop"
	"github.com/sirupsen/logrus"
)

// Settings converts a Config into AWS client settings.
func Settings(cfg config.Config) awsclient.Settings {
	return awsclient.Settings{
		Region:           cfg.Region,
		DynamoDBEndpoint: cfg.DynamoDBEndpoint,
		ECSEndpoint:      cfg.ECSEndpoint,
		AccessKey:        cfg.LocalAccessKey,
		SecretKey:        cfg.LocalSecretKey,
	}
}

// Service builds the stop service and the store it reads from.
func Service(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*taskstop.Service, *store.DynamoStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	factory := awsclient.Factory{Settings: Settings(cfg)}

	dynamo, err := factory.DynamoDB(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("dynamodb client: %w", err)
	}
	ecsClient, err := factory.ECS(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("ecs client: %w", err)
	}

	servers, err := store.NewDynamoStore(dynamo, cfg.Table)
	if err != nil {
		return nil, nil, err
	}
	tasks, err := cluster.NewECSCluster(ecsClient)
	if err != nil {
		return nil, nil, err
	}
	svc, err := taskstop.New(servers, tasks, taskstop.Options{
		Cluster: cfg.Cluster,
		Reason:  cfg.StopReason,
		Logger:  log,
	})
	if err != nil {
		return nil, nil, err
	}
	return svc, servers, nil
}

// Provisioner builds a table provisioner writing progress to out.
func Provisioner(ctx context.Context, cfg config.Config, out io.Writer) (*provisioner.Runner, error) {
	factory := awsclient.Factory{Settings: Settings(cfg)}
	dynamo, err := factory.DynamoDB(ctx)
	if err != nil {
		return nil, fmt.Errorf("dynamodb client: %w", err)
	}
	runner := provisioner.New(provisioner.NewAWSDynamoClient(dynamo))
	runner.Out = out
	return runner, nil
}
