package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// LoaderConfig configures how entry files are discovered.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	Parser    Options
}

// Loader turns a directory of front-matter Markdown files into entries.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
	parser    *Parser
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	return &Loader{
		fs:        filesystem,
		pattern:   pattern,
		recursive: cfg.Recursive,
		parser:    NewParser(cfg.Parser),
	}
}

type loadedEntry struct {
	entry interfaces.Entry
	order int
	path  string
}

// Load walks root and returns the entries ordered by their front-matter order,
// then by path. Ids repeated across files are rejected.
func (l *Loader) Load(ctx context.Context, root string) ([]interfaces.Entry, error) {
	root = filepath.ToSlash(filepath.Clean(root))

	var loaded []loadedEntry
	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !l.recursive && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.matchesPattern(path) {
			return nil
		}

		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return fmt.Errorf("markdown loader read %s: %w", path, err)
		}
		entry, order, err := l.parser.parseEntry(data)
		if err != nil {
			if validation.KindOf(err) != "" {
				return err
			}
			return fmt.Errorf("markdown loader parse %s: %w", path, err)
		}
		loaded = append(loaded, loadedEntry{entry: entry, order: order, path: path})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.SliceStable(loaded, func(i, j int) bool {
		if loaded[i].order != loaded[j].order {
			return loaded[i].order < loaded[j].order
		}
		return loaded[i].path < loaded[j].path
	})

	entries := make([]interfaces.Entry, 0, len(loaded))
	for _, item := range loaded {
		entries = append(entries, item.entry)
	}
	if err := validation.ValidateEntries(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// LoadEntries reads every *.md file directly under dir.
func LoadEntries(ctx context.Context, dir string) ([]interfaces.Entry, error) {
	return NewLoader(os.DirFS(dir), LoaderConfig{}).Load(ctx, ".")
}

func (l *Loader) matchesPattern(path string) bool {
	pattern := filepath.ToSlash(l.pattern)
	if strings.Contains(pattern, "**") {
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	target := path
	if !strings.Contains(pattern, "/") {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}
