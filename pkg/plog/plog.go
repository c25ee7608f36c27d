// Package plog provides the saturation loop's structured logger, a
// thin wrapper over github.com/hashicorp/go-hclog in the same
// named-field style the teacher's ContextMonitor logs operation
// lifecycle events, generalized from a single *log.Logger to a leveled,
// named logger whose fields are clause ids, rule names and step counts
// instead of context operation ids.
package plog

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// Logger is the saturation loop's structured logger.
type Logger = hclog.Logger

// New returns a named logger writing to stderr at the given level
// ("trace", "debug", "info", "warn", "error"; empty defaults to "info").
func New(name, level string) Logger {
	if level == "" {
		level = "info"
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		Output:     os.Stderr,
		JSONFormat: false,
	})
}

// NewDiscard returns a logger that drops every message, for tests and
// library embedders that want silence by default.
func NewDiscard() Logger {
	return hclog.NewNullLogger()
}
