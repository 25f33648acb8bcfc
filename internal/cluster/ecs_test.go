// Where: internal/cluster/ecs_test.go
// What: Tests for the ECS stop adapter.
// Why: Only InvalidParameterException may be reported as an invalid task.
package cluster

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/poruru/stop-server/internal/taskstop"
)

type fakeECS struct {
	inputs []*ecs.StopTaskInput
	err    error
}

func (f *fakeECS) StopTask(_ context.Context, params *ecs.StopTaskInput, _ ...func(*ecs.Options)) (*ecs.StopTaskOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &ecs.StopTaskOutput{Task: &types.Task{TaskArn: params.Task}}, nil
}

func TestStopTaskSendsInput(t *testing.T) {
	client := &fakeECS{}
	c, err := NewECSCluster(client)
	if err != nil {
		t.Fatalf("new cluster: %v", err)
	}

	if err := c.StopTask(context.Background(), "game", "abc123", "Requested stop"); err != nil {
		t.Fatalf("stop task: %v", err)
	}
	if len(client.inputs) != 1 {
		t.Fatalf("expected one call, got %d", len(client.inputs))
	}
	input := client.inputs[0]
	if aws.ToString(input.Cluster) != "game" || aws.ToString(input.Task) != "abc123" {
		t.Fatalf("unexpected input: %+v", input)
	}
	if aws.ToString(input.Reason) != "Requested stop" {
		t.Fatalf("unexpected reason: %s", aws.ToString(input.Reason))
	}
}

func TestStopTaskOmitsEmptyReason(t *testing.T) {
	client := &fakeECS{}
	c, _ := NewECSCluster(client)

	if err := c.StopTask(context.Background(), "game", "abc123", ""); err != nil {
		t.Fatalf("stop task: %v", err)
	}
	if client.inputs[0].Reason != nil {
		t.Fatalf("expected nil reason")
	}
}

func TestStopTaskMapsInvalidParameter(t *testing.T) {
	client := &fakeECS{err: &types.InvalidParameterException{Message: aws.String("The referenced task was not found.")}}
	c, _ := NewECSCluster(client)

	err := c.StopTask(context.Background(), "game", "gone", "")
	if !errors.Is(err, taskstop.ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask, got %v", err)
	}
	if !strings.Contains(err.Error(), "referenced task was not found") {
		t.Fatalf("expected ECS message in error, got %v", err)
	}
}

func TestStopTaskKeepsOtherErrors(t *testing.T) {
	client := &fakeECS{err: &types.ClusterNotFoundException{Message: aws.String("Cluster not found.")}}
	c, _ := NewECSCluster(client)

	err := c.StopTask(context.Background(), "missing", "abc123", "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, taskstop.ErrInvalidTask) {
		t.Fatalf("cluster errors must not be reported as invalid task")
	}
	var notFound *types.ClusterNotFoundException
	if !errors.As(err, &notFound) {
		t.Fatalf("expected wrapped ClusterNotFoundException, got %v", err)
	}
	if !strings.Contains(err.Error(), "ClusterNotFoundException") {
		t.Fatalf("expected error code in message, got %v", err)
	}
}

func TestStopTaskTransportError(t *testing.T) {
	client := &fakeECS{err: errors.New("dial tcp: i/o timeout")}
	c, _ := NewECSCluster(client)

	err := c.StopTask(context.Background(), "game", "abc123", "")
	if err == nil || errors.Is(err, taskstop.ErrInvalidTask) {
		t.Fatalf("unexpected error: %v", err)
	}
}
