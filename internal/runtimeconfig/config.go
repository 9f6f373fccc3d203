package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-accordion/internal/util"
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

var ErrLoggingProviderUnknown = errors.New("accordion config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("accordion config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("accordion config: logging format is invalid")

// Shaper kinds understood by the transport package.
const (
	ShaperJSON = "json"
	ShaperPath = "path"
)

// Config aggregates the widget options and the runtime bindings for one accordion.
type Config struct {
	// OpenAt is the id opened during the initial merge pass. -1 opens nothing.
	OpenAt   int                `yaml:"openAt" json:"openAt"`
	Multiple bool               `yaml:"multiple" json:"multiple"`
	Entries  []interfaces.Entry `yaml:"entries" json:"entries"`
	Ajax     *AjaxConfig        `yaml:"ajax" json:"ajax"`
	Classes  interfaces.Classes `yaml:"classes" json:"classes"`
	Logging  LoggingConfig      `yaml:"logging" json:"logging"`
	Routes   RoutesConfig       `yaml:"routes" json:"routes"`
}

// AjaxConfig describes the remote entry source. URL or Route must be set; Shape
// or a Shaper kind must be set.
type AjaxConfig struct {
	URL     string        `yaml:"url" json:"url"`
	Route   *RouteRef     `yaml:"route" json:"route"`
	Shaper  ShaperConfig  `yaml:"shaper" json:"shaper"`
	Retry   RetryConfig   `yaml:"retry" json:"retry"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Fetcher and Shape override the declarative settings.
	Fetcher interfaces.Fetcher     `yaml:"-" json:"-"`
	Shape   interfaces.EntryShaper `yaml:"-" json:"-"`
}

// RouteRef names a go-urlkit route used to build the ajax URL.
type RouteRef struct {
	Group  string            `yaml:"group" json:"group"`
	Name   string            `yaml:"name" json:"name"`
	Params map[string]string `yaml:"params" json:"params"`
	Query  map[string]string `yaml:"query" json:"query"`
}

// ShaperConfig selects how a fetched payload becomes entries.
type ShaperConfig struct {
	Kind string `yaml:"kind" json:"kind"`
	// Schema validates JSON payloads against the entries schema before decoding.
	Schema  bool   `yaml:"schema" json:"schema"`
	Items   string `yaml:"items" json:"items"`
	ID      string `yaml:"id" json:"id"`
	Header  string `yaml:"header" json:"header"`
	Content string `yaml:"content" json:"content"`
}

// RetryConfig tunes the HTTP fetcher backoff.
type RetryConfig struct {
	MaxTries        uint          `yaml:"maxTries" json:"maxTries"`
	InitialInterval time.Duration `yaml:"initialInterval" json:"initialInterval"`
	MaxElapsed      time.Duration `yaml:"maxElapsed" json:"maxElapsed"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider" json:"provider"`
	Level     string   `yaml:"level" json:"level"`
	Format    string   `yaml:"format" json:"format"`
	AddSource bool     `yaml:"addSource" json:"addSource"`
	Focus     []string `yaml:"focus" json:"focus"`
}

// RoutesConfig mirrors urlkit.Config so routes can live in YAML.
type RoutesConfig struct {
	Groups []RouteGroupConfig `yaml:"groups" json:"groups"`
}

// RouteGroupConfig mirrors urlkit.GroupConfig.
type RouteGroupConfig struct {
	Name    string             `yaml:"name" json:"name"`
	BaseURL string             `yaml:"baseURL" json:"baseURL"`
	Path    string             `yaml:"path" json:"path"`
	Paths   map[string]string  `yaml:"paths" json:"paths"`
	Groups  []RouteGroupConfig `yaml:"groups" json:"groups"`
}

// Empty reports whether no route groups are configured.
func (r RoutesConfig) Empty() bool {
	return len(r.Groups) == 0
}

// URLKit converts the routes into a go-urlkit configuration.
func (r RoutesConfig) URLKit() *urlkit.Config {
	if r.Empty() {
		return nil
	}
	return &urlkit.Config{Groups: convertGroups(r.Groups)}
}

func convertGroups(groups []RouteGroupConfig) []urlkit.GroupConfig {
	if len(groups) == 0 {
		return nil
	}
	out := make([]urlkit.GroupConfig, 0, len(groups))
	for _, group := range groups {
		out = append(out, urlkit.GroupConfig{
			Name:    group.Name,
			BaseURL: group.BaseURL,
			Path:    group.Path,
			Paths:   util.CloneStringMap(group.Paths),
			Groups:  convertGroups(group.Groups),
		})
	}
	return out
}

// DefaultClasses returns the stock presentation class names.
func DefaultClasses() interfaces.Classes {
	return interfaces.Classes{
		Root:    "jaccordion",
		Header:  "jaccordion__header",
		Opened:  "jaccordion__header--opened",
		Content: "jaccordion__content",
	}
}

// DefaultConfig returns the stock widget options: first item opened, single-open
// mode, no static or remote entries. Logging stays off until a provider is named.
func DefaultConfig() Config {
	return Config{
		OpenAt:   0,
		Multiple: false,
		Entries:  []interfaces.Entry{},
		Classes:  DefaultClasses(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the options. The first violation is returned.
func (cfg Config) Validate() error {
	if err := validation.ValidateOpenAt(cfg.OpenAt); err != nil {
		return err
	}
	if err := validation.ValidateEntries(cfg.Entries); err != nil {
		return err
	}
	if cfg.Ajax != nil {
		if err := cfg.Ajax.Validate(); err != nil {
			return err
		}
	}
	for _, class := range []struct{ name, value string }{
		{"classes.root", cfg.Classes.Root},
		{"classes.header", cfg.Classes.Header},
		{"classes.opened", cfg.Classes.Opened},
		{"classes.content", cfg.Classes.Content},
	} {
		if strings.TrimSpace(class.value) == "" {
			return validation.MissingArgument(class.name)
		}
	}
	return cfg.Logging.Validate()
}

// Validate checks the ajax source.
func (a AjaxConfig) Validate() error {
	if strings.TrimSpace(a.URL) == "" {
		if a.Route == nil || strings.TrimSpace(a.Route.Name) == "" {
			return validation.MissingArgument("ajax.url")
		}
		if strings.TrimSpace(a.Route.Group) == "" {
			return validation.MissingArgument("ajax.route.group")
		}
	}
	if a.Shape != nil {
		return nil
	}
	switch normalizeKind(a.Shaper.Kind) {
	case "":
		return validation.MissingArgument("ajax.shape")
	case ShaperJSON, ShaperPath:
		return nil
	default:
		return validation.WrongType("ajax.shaper.kind", "json or path shaper")
	}
}

// ShaperKind returns the normalized shaper kind.
func (a AjaxConfig) ShaperKind() string {
	return normalizeKind(a.Shaper.Kind)
}

// Validate checks the logging options when a provider is named.
func (l LoggingConfig) Validate() error {
	provider := normalizeProvider(l.Provider)
	if provider == "" {
		return nil
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(l.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(l.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
