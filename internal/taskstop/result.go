// Where: internal/taskstop/result.go
// What: Stop result value and outcome taxonomy.
// Why: Give every stop invocation one uniform response shape.
package taskstop

import "errors"

// ErrInvalidTask is returned (wrapped) by a Stopper when the cluster cannot
// locate the task identifier, typically because it already stopped.
var ErrInvalidTask = errors.New("task not found in cluster")

// Outcome classifies how a stop invocation ended.
type Outcome string

const (
	OutcomeStopped          Outcome = "stopped"
	OutcomeMissingParameter Outcome = "missing_parameter"
	OutcomeServerNotFound   Outcome = "server_not_found"
	OutcomeNoTask           Outcome = "no_task"
	OutcomeTaskNotFound     Outcome = "task_not_found"
	OutcomeUnknownError     Outcome = "unknown_error"
)

// Response messages returned to callers.
const (
	MessageStopped          = "Tasks have successfully stopped!"
	MessageMissingParameter = "Stop task requires 'server' parameter!"
	MessageServerNotFound   = "The server you are trying to stop does not exist"
	MessageNoTask           = "The server you are trying to stop does not have an associated task!"
	MessageTaskNotFound     = "Tried to stop task, but was unable to find task in cluster!"
	MessageUnknownError     = "An unknown error occurred!"
)

// Result is the JSON body returned for every stop request.
type Result struct {
	Message string  `json:"message"`
	Success bool    `json:"success"`
	Outcome Outcome `json:"-"`
}

func newResult(outcome Outcome) Result {
	switch outcome {
	case OutcomeStopped:
		return Result{Message: MessageStopped, Success: true, Outcome: outcome}
	case OutcomeMissingParameter:
		return Result{Message: MessageMissingParameter, Outcome: outcome}
	case OutcomeServerNotFound:
		return Result{Message: MessageServerNotFound, Outcome: outcome}
	case OutcomeNoTask:
		return Result{Message: MessageNoTask, Outcome: outcome}
	case OutcomeTaskNotFound:
		return Result{Message: MessageTaskNotFound, Outcome: outcome}
	default:
		return Result{Message: MessageUnknownError, Outcome: OutcomeUnknownError}
	}
}
