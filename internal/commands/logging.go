package commands

import (
	"strings"

	"github.com/goliatone/go-accordion/internal/logging"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// CommandLogger returns the accordion.commands logger for module, tagged with
// the command component fields.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.CommandsLogger(provider)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
