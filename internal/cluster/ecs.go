// Where: internal/cluster/ecs.go
// What: ECS adapter for stopping tasks.
// Why: Translate ECS errors into the stop flow's invalid-task signal.
package cluster

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/aws/smithy-go"
	"github.com/poruru/stop-server/internal/taskstop"
)

// ECSAPI is the subset of *ecs.Client used by ECSCluster.
type ECSAPI interface {
	StopTask(ctx context.Context, params *ecs.StopTaskInput, optFns ...func(*ecs.Options)) (*ecs.StopTaskOutput, error)
}

// ECSCluster stops tasks through the ECS API.
type ECSCluster struct {
	client ECSAPI
}

func NewECSCluster(client ECSAPI) (*ECSCluster, error) {
	if client == nil {
		return nil, fmt.Errorf("ecs client is nil")
	}
	return &ECSCluster{client: client}, nil
}

// StopTask implements taskstop.Stopper. The StopTask response is discarded.
func (c *ECSCluster) StopTask(ctx context.Context, cluster, task, reason string) error {
	input := &ecs.StopTaskInput{
		Cluster: aws.String(cluster),
		Task:    aws.String(task),
	}
	if reason != "" {
		input.Reason = aws.String(reason)
	}

	_, err := c.client.StopTask(ctx, input)
	if err == nil {
		return nil
	}

	var invalid *types.InvalidParameterException
	if errors.As(err, &invalid) {
		return fmt.Errorf("stop task %s: %w: %s", task, taskstop.ErrInvalidTask, invalid.ErrorMessage())
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("stop task %s: %s: %w", task, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("stop task %s: %w", task, err)
}
