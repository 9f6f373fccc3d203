package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/net/html"

	"github.com/goliatone/go-accordion"
	accordioncmd "github.com/goliatone/go-accordion/internal/commands/accordion"
	"github.com/goliatone/go-accordion/internal/logging"
	"github.com/goliatone/go-accordion/internal/storage"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// Options captures configuration for the accordion CLI bootstrap.
type Options struct {
	Input      string
	ConfigPath string
	// Database is a sqlite file backing the entry store. Collection selects the
	// stored entries mounted through a db:// ajax source.
	Database   string
	Collection string
	LogWriter  io.Writer
}

// Module wraps the controller, its command handlers and the optional store.
type Module struct {
	Controller *accordion.Controller
	Handlers   *accordioncmd.HandlerSet
	Store      *accordion.EntryStore
	Logger     interfaces.Logger

	closers []io.Closer
}

// Close releases the database handle opened for the entry store.
func (m *Module) Close() error {
	var first error
	for _, closer := range m.closers {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// BuildModule reads the input document and configuration and constructs an
// unmounted controller with its command handlers.
func BuildModule(opts Options) (*Module, error) {
	cfg := accordion.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := accordion.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if strings.TrimSpace(cfg.Logging.Provider) == "" {
		cfg.Logging.Provider = accordion.LoggingProviderConsole
	}
	provider, err := accordion.NewLoggerProvider(cfg.Logging, opts.LogWriter)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	container, err := LoadContainer(opts.Input)
	if err != nil {
		return nil, err
	}

	module := &Module{Logger: logging.ModuleLogger(provider, "cli")}
	ctrlOpts := []accordion.Option{accordion.WithLoggerProvider(provider)}

	if dbPath := strings.TrimSpace(opts.Database); dbPath != "" {
		sqlDB, err := sql.Open(storage.DriverSQLite, dbPath)
		if err != nil {
			return nil, fmt.Errorf("open database %s: %w", dbPath, err)
		}
		module.closers = append(module.closers, sqlDB)
		store, err := accordion.OpenEntryStore(context.Background(), sqlDB, storage.DriverSQLite, provider)
		if err != nil {
			_ = module.Close()
			return nil, err
		}
		module.Store = store
		ctrlOpts = append(ctrlOpts, accordion.WithEntryStore(store))

		if collection := strings.TrimSpace(opts.Collection); collection != "" && cfg.Ajax == nil {
			cfg.Ajax = &accordion.AjaxConfig{
				URL:    storage.Scheme + "://" + collection,
				Shaper: accordion.ShaperConfig{Kind: "json"},
			}
		}
	}

	ctrl, err := accordion.New(container, cfg, ctrlOpts...)
	if err != nil {
		_ = module.Close()
		return nil, err
	}
	module.Controller = ctrl

	var cmdOpts []accordioncmd.Option
	if module.Store != nil {
		cmdOpts = append(cmdOpts, accordioncmd.WithEntryStore(module.Store))
	}
	handlers, err := accordioncmd.RegisterAccordionCommands(nil, ctrl, provider, cmdOpts...)
	if err != nil {
		_ = module.Close()
		return nil, err
	}
	module.Handlers = handlers
	return module, nil
}

// LoadContainer reads path and returns the <dl> container. Files ending in .md
// or .markdown are rendered as Markdown first.
func LoadContainer(path string) (*html.Node, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("input is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return accordion.FromMarkdown(data)
	default:
		return accordion.ParseHTML(data)
	}
}

// ParseIDs parses a comma separated id list.
func ParseIDs(value string) ([]int, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse id %q: %w", trimmed, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
