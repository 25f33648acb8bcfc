// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep naming of the operator CLI in one place.
package meta

const (
	// Project Identity
	AppName   = "taskstop"
	EnvPrefix = "TASKSTOP"

	// Directory Layout
	HomeDir        = ".taskstop"
	ConfigFileName = "config.yaml"

	// Local Environment
	DefaultComposeProject = "esb"
	DatabaseService       = "database"
	DatabaseContainerPort = 8000
	DefaultDatabasePort   = 8001
)
