package accordion

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-accordion/internal/logging"
	"github.com/goliatone/go-accordion/internal/logging/console"
	"github.com/goliatone/go-accordion/internal/logging/gologger"
	"github.com/goliatone/go-accordion/internal/runtimeconfig"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// Logging provider names accepted in LoggingConfig.Provider.
const (
	LoggingProviderConsole  = "console"
	LoggingProviderGoLogger = "gologger"
	LoggingProviderNoop     = "noop"
)

// NewLoggerProvider builds the provider named by cfg. Console output goes to w,
// or stdout when w is nil. An empty provider name disables logging.
func NewLoggerProvider(cfg LoggingConfig, w io.Writer) (interfaces.LoggerProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", LoggingProviderNoop:
		return noopProvider{}, nil
	case LoggingProviderConsole:
		level := consoleLevel(cfg.Level)
		return console.NewProvider(console.Options{Writer: w, MinLevel: &level}), nil
	case LoggingProviderGoLogger:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
