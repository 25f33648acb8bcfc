// Where: internal/taskstop/service.go
// What: Resolve a server name to its running task and stop it.
// Why: Keep the stop flow independent of AWS so it can be driven by Lambda or the CLI.
package taskstop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultReason is sent with every stop request unless overridden.
const DefaultReason = "Requested stop from public API endpoint"

// Record is a server entry from the lookup store.
type Record struct {
	Name string
	Task string
}

// HasTask reports whether the record references a running task.
func (r Record) HasTask() bool {
	return strings.TrimSpace(r.Task) != ""
}

// Lookup resolves server names to records.
type Lookup interface {
	Get(ctx context.Context, name string) (Record, bool, error)
}

// Stopper requests cancellation of a task within a cluster.
// Implementations wrap ErrInvalidTask when the task id is unknown to the cluster.
type Stopper interface {
	StopTask(ctx context.Context, cluster, task, reason string) error
}

// Options configures a Service.
type Options struct {
	Cluster string
	Reason  string
	Logger  logrus.FieldLogger
}

// Service stops the task associated with a server.
type Service struct {
	lookup  Lookup
	stopper Stopper
	cluster string
	reason  string
	log     logrus.FieldLogger
}

// New wires a Service with its collaborators.
func New(lookup Lookup, stopper Stopper, opts Options) (*Service, error) {
	if lookup == nil {
		return nil, fmt.Errorf("lookup store is nil")
	}
	if stopper == nil {
		return nil, fmt.Errorf("task stopper is nil")
	}
	cluster := strings.TrimSpace(opts.Cluster)
	if cluster == "" {
		return nil, fmt.Errorf("cluster is required")
	}
	reason := strings.TrimSpace(opts.Reason)
	if reason == "" {
		reason = DefaultReason
	}
	logger := opts.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &Service{
		lookup:  lookup,
		stopper: stopper,
		cluster: cluster,
		reason:  reason,
		log:     logger,
	}, nil
}

// Stop looks up serverName and stops its task. It always returns a Result;
// every failure is reported through Result rather than an error.
// A blank name counts as missing; any other name is used as the key verbatim.
func (s *Service) Stop(ctx context.Context, serverName string) Result {
	entry := s.log.WithFields(logrus.Fields{
		"server":  serverName,
		"cluster": s.cluster,
	})

	if strings.TrimSpace(serverName) == "" {
		return s.finish(entry, OutcomeMissingParameter, nil)
	}

	record, ok, err := s.lookup.Get(ctx, serverName)
	if err != nil {
		return s.finish(entry, OutcomeUnknownError, fmt.Errorf("lookup server %q: %w", serverName, err))
	}
	if !ok {
		return s.finish(entry, OutcomeServerNotFound, nil)
	}
	if !record.HasTask() {
		return s.finish(entry, OutcomeNoTask, nil)
	}

	entry = entry.WithField("task", record.Task)
	if err := s.stopper.StopTask(ctx, s.cluster, record.Task, s.reason); err != nil {
		if errors.Is(err, ErrInvalidTask) {
			return s.finish(entry, OutcomeTaskNotFound, err)
		}
		return s.finish(entry, OutcomeUnknownError, err)
	}
	return s.finish(entry, OutcomeStopped, nil)
}

func (s *Service) finish(entry logrus.FieldLogger, outcome Outcome, err error) Result {
	entry = entry.WithField("outcome", outcome)
	switch {
	case outcome == OutcomeUnknownError:
		entry.WithError(err).Error("stop request failed")
	case err != nil:
		entry.WithError(err).Warn("stop request rejected")
	case outcome == OutcomeStopped:
		entry.Info("task stopped")
	default:
		entry.Info("stop request rejected")
	}
	return newResult(outcome)
}
