package accordion

import "github.com/goliatone/go-accordion/internal/runtimeconfig"

var (
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	AjaxConfig       = runtimeconfig.AjaxConfig
	RouteRef         = runtimeconfig.RouteRef
	ShaperConfig     = runtimeconfig.ShaperConfig
	RetryConfig      = runtimeconfig.RetryConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
	RoutesConfig     = runtimeconfig.RoutesConfig
	RouteGroupConfig = runtimeconfig.RouteGroupConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

func DefaultClasses() Classes {
	return runtimeconfig.DefaultClasses()
}

// LoadConfig reads a YAML options file layered over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}

// ParseConfig decodes YAML or JSON options layered over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	return runtimeconfig.Parse(data)
}
