package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-accordion/internal/runtimeconfig"
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

func TestDefaultConfigMatchesStockOptions(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if cfg.OpenAt != 0 || cfg.Multiple || len(cfg.Entries) != 0 || cfg.Ajax != nil {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	want := interfaces.Classes{
		Root:    "jaccordion",
		Header:  "jaccordion__header",
		Opened:  "jaccordion__header--opened",
		Content: "jaccordion__content",
	}
	if cfg.Classes != want {
		t.Fatalf("unexpected classes %+v", cfg.Classes)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		kind   validation.Kind
	}{
		{"openAt below -1", func(c *runtimeconfig.Config) { c.OpenAt = -2 }, validation.KindWrongType},
		{"blank entry header", func(c *runtimeconfig.Config) {
			c.Entries = []interfaces.Entry{{ID: 1, Content: "x"}}
		}, validation.KindEmpty},
		{"duplicate entries", func(c *runtimeconfig.Config) {
			c.Entries = []interfaces.Entry{{ID: 1, Header: "a", Content: "a"}, {ID: 1, Header: "b", Content: "b"}}
		}, validation.KindDuplicateID},
		{"ajax without url", func(c *runtimeconfig.Config) {
			c.Ajax = &runtimeconfig.AjaxConfig{Shaper: runtimeconfig.ShaperConfig{Kind: "json"}}
		}, validation.KindMissingArgument},
		{"ajax without shape", func(c *runtimeconfig.Config) {
			c.Ajax = &runtimeconfig.AjaxConfig{URL: "https://example.com/entries"}
		}, validation.KindMissingArgument},
		{"ajax unknown shaper", func(c *runtimeconfig.Config) {
			c.Ajax = &runtimeconfig.AjaxConfig{URL: "x", Shaper: runtimeconfig.ShaperConfig{Kind: "xml"}}
		}, validation.KindWrongType},
		{"missing class", func(c *runtimeconfig.Config) { c.Classes.Opened = "" }, validation.KindMissingArgument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !validation.Is(err, tc.kind) {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
		})
	}
}

func TestConfigValidate_AcceptsDisabledOpenAtAndRoute(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.OpenAt = -1
	cfg.Ajax = &runtimeconfig.AjaxConfig{
		Route:  &runtimeconfig.RouteRef{Group: "api", Name: "entries"},
		Shaper: runtimeconfig.ShaperConfig{Kind: "PATH"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Ajax.ShaperKind() != runtimeconfig.ShaperPath {
		t.Fatalf("expected normalized shaper kind")
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestDecodeTypeChecks(t *testing.T) {
	cases := []struct {
		name  string
		raw   map[string]any
		kind  validation.Kind
		field string
	}{
		{"openAt string", map[string]any{"openAt": "1"}, validation.KindWrongType, "openAt"},
		{"multiple string", map[string]any{"multiple": "yes"}, validation.KindWrongType, "multiple"},
		{"entries object", map[string]any{"entries": map[string]any{}}, validation.KindWrongType, "entries"},
		{"entry missing id", map[string]any{"entries": []any{map[string]any{"header": "a", "content": "b"}}}, validation.KindMissingArgument, "id"},
		{"ajax url number", map[string]any{"ajax": map[string]any{"url": 5}}, validation.KindWrongType, "ajax.url"},
		{"ajax bad timeout", map[string]any{"ajax": map[string]any{"url": "x", "shaper": "json", "timeout": "soon"}}, validation.KindWrongType, "ajax.timeout"},
		{"class number", map[string]any{"classes": map[string]any{"root": 1}}, validation.KindWrongType, "classes.root"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runtimeconfig.Decode(tc.raw)
			if !validation.Is(err, tc.kind) {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
			if got := validation.Field(err); got != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, got)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accordion.yaml")
	body := `
openAt: 2
multiple: true
entries:
  - id: 2
    header: Shipping
    content: "<p>Ships in 2 days</p>"
ajax:
  route:
    group: api
    name: entries
    params:
      collection: faq
  shaper:
    kind: path
    items: data.items
    header: title
  retry:
    maxTries: 4
    initialInterval: 50ms
  timeout: 2s
classes:
  root: faq
logging:
  provider: gologger
  level: debug
  format: json
routes:
  groups:
    - name: api
      baseURL: https://example.com
      paths:
        entries: /api/:collection/entries
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := runtimeconfig.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.OpenAt != 2 || !cfg.Multiple {
		t.Fatalf("unexpected options %+v", cfg)
	}
	if len(cfg.Entries) != 1 || cfg.Entries[0].Header != "Shipping" {
		t.Fatalf("unexpected entries %+v", cfg.Entries)
	}
	if cfg.Classes.Root != "faq" || cfg.Classes.Header != "jaccordion__header" {
		t.Fatalf("expected class override layered on defaults, got %+v", cfg.Classes)
	}
	ajax := cfg.Ajax
	if ajax == nil || ajax.Route == nil || ajax.Route.Params["collection"] != "faq" {
		t.Fatalf("unexpected ajax %+v", ajax)
	}
	if ajax.Shaper.Kind != "path" || ajax.Shaper.Items != "data.items" || ajax.Shaper.Header != "title" {
		t.Fatalf("unexpected shaper %+v", ajax.Shaper)
	}
	if ajax.Retry.MaxTries != 4 || ajax.Retry.InitialInterval != 50*time.Millisecond || ajax.Timeout != 2*time.Second {
		t.Fatalf("unexpected retry settings %+v timeout %v", ajax.Retry, ajax.Timeout)
	}
	if cfg.Logging.Provider != "gologger" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	routes := cfg.Routes.URLKit()
	if routes == nil || len(routes.Groups) != 1 || routes.Groups[0].Paths["entries"] != "/api/:collection/entries" {
		t.Fatalf("unexpected routes %+v", routes)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := runtimeconfig.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
