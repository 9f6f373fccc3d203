package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-accordion"
	"github.com/goliatone/go-accordion/cmd/accordion/internal/bootstrap"
	accordioncmd "github.com/goliatone/go-accordion/internal/commands/accordion"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("accordion: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("accordion", flag.ContinueOnError)
	input := fs.String("input", "", "HTML or Markdown document holding the <dl> container")
	configPath := fs.String("config", "", "YAML options file")
	output := fs.String("output", "", "Write the rendered document here instead of stdout")
	fragment := fs.Bool("fragment", false, "Render only the <dl> container")
	open := fs.String("open", "", "Comma separated ids to open after mounting")
	closeIDs := fs.String("close", "", "Comma separated ids to close after mounting")
	toggle := fs.String("toggle", "", "Comma separated ids to toggle after mounting")
	remove := fs.String("remove", "", "Comma separated ids to remove after mounting")
	database := fs.String("db", "", "sqlite database file holding stored entries")
	collection := fs.String("collection", "", "Stored collection mounted through db://<collection>")
	importDir := fs.String("import", "", "Directory of front-matter Markdown entries saved into -collection before mounting")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*importDir) != "" && (strings.TrimSpace(*database) == "" || strings.TrimSpace(*collection) == "") {
		return fmt.Errorf("-import requires -db and -collection")
	}

	actions := []struct {
		name  string
		value string
	}{
		{accordioncmd.ActionOpen, *open},
		{accordioncmd.ActionClose, *closeIDs},
		{accordioncmd.ActionToggle, *toggle},
	}
	removeIDs, err := bootstrap.ParseIDs(*remove)
	if err != nil {
		return fmt.Errorf("parse -remove: %w", err)
	}

	module, err := moduleBuilder(bootstrap.Options{
		Input:      *input,
		ConfigPath: *configPath,
		Database:   *database,
		Collection: *collection,
		LogWriter:  os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer module.Close()

	ctx := context.Background()
	if dir := strings.TrimSpace(*importDir); dir != "" {
		if module.Handlers.Import == nil {
			return fmt.Errorf("entry store not configured")
		}
		if err := module.Handlers.Import.Execute(ctx, accordioncmd.ImportEntriesCommand{
			Directory:  dir,
			Collection: *collection,
			Recursive:  true,
		}); err != nil {
			return fmt.Errorf("import entries: %w", err)
		}
	}

	if err := module.Handlers.Mount.Execute(ctx, accordioncmd.MountCommand{}); err != nil {
		return fmt.Errorf("mount: %w", err)
	}

	for _, action := range actions {
		ids, err := bootstrap.ParseIDs(action.value)
		if err != nil {
			return fmt.Errorf("parse -%s: %w", action.name, err)
		}
		for _, id := range ids {
			if err := module.Handlers.Action.Execute(ctx, accordioncmd.ItemActionCommand{Action: action.name, ID: id}); err != nil {
				return fmt.Errorf("%s %d: %w", action.name, id, err)
			}
		}
	}
	for _, id := range removeIDs {
		if err := module.Handlers.Remove.Execute(ctx, accordioncmd.RemoveItemCommand{ID: id}); err != nil {
			return fmt.Errorf("remove %d: %w", id, err)
		}
	}

	node := module.Controller.Container()
	if !*fragment {
		node = documentRoot(node)
	}

	out := stdout
	if path := strings.TrimSpace(*output); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output %s: %w", path, err)
		}
		defer file.Close()
		out = file
	}
	if err := accordion.Render(out, node); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func documentRoot(node *html.Node) *html.Node {
	for node.Parent != nil {
		node = node.Parent
	}
	return node
}
