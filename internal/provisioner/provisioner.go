// Where: internal/provisioner/provisioner.go
// What: Provisioner entrypoint for the server list table.
// Why: Let developers bootstrap a local DynamoDB before invoking the stop service.
package provisioner

import (
	"context"
	"fmt"
	"io"
	"os"
)

type Runner struct {
	Out    io.Writer
	Client DynamoDBAPI
}

func New(client DynamoDBAPI) *Runner {
	return &Runner{Out: os.Stdout, Client: client}
}

// EnsureServerTable creates the server list table if it does not exist and
// reports whether it was created.
func (r *Runner) EnsureServerTable(ctx context.Context, table string) (bool, error) {
	if r == nil {
		return false, fmt.Errorf("provisioner is nil")
	}
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	created, err := ensureTable(ctx, r.Client, table)
	if err != nil {
		fmt.Fprintf(out, "❌ Failed to create table %s: %v\n", table, err)
		return false, err
	}
	if created {
		fmt.Fprintf(out, "✅ Created DynamoDB Table: %s\n", table)
	} else {
		fmt.Fprintf(out, "Table '%s' already exists. Skipping.\n", table)
	}
	return created, nil
}
