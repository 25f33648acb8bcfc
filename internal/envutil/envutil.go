// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru/stop-server/internal/meta"
)

// HostEnvKey constructs a CLI-level environment variable name
// by combining the CLI prefix with the given suffix.
// Example: HostEnvKey("CONFIG") returns "TASKSTOP_CONFIG"
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}

// GetHostEnv retrieves a CLI-level environment variable.
// Example: GetHostEnv("CONFIG") returns the value of TASKSTOP_CONFIG
func GetHostEnv(suffix string) string {
	return os.Getenv(HostEnvKey(suffix))
}

// Lookup returns the trimmed value of key and whether it is non-empty.
func Lookup(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}
