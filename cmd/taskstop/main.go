// Where: cmd/taskstop/main.go
// What: Operator CLI entrypoint.
// Why: Execute taskstop commands with configured dependencies.
package main

import (
	"os"

	"github.com/poruru/stop-server/internal/app"
)

func main() {
	deps, closer := buildDependencies()
	code := app.Run(os.Args[1:], deps)
	if closer != nil {
		_ = closer.Close()
	}
	os.Exit(code)
}
