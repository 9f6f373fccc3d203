package accordioncmd

import (
	"context"
	"errors"
	"os"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-accordion/internal/commands"
	"github.com/goliatone/go-accordion/internal/markdown"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

const (
	mountOperation   = "accordion.mount"
	unmountOperation = "accordion.unmount"
	actionOperation  = "accordion.item_action"
	insertOperation  = "accordion.item_insert"
	removeOperation  = "accordion.item_remove"
	importOperation  = "accordion.entries_import"
)

var (
	// ErrUnknownAction is returned when an item action slips past validation.
	ErrUnknownAction = errors.New("accordion command: unknown item action")
	// ErrUnknownPlacement is returned when an insert mode slips past validation.
	ErrUnknownPlacement = errors.New("accordion command: unknown placement")
)

var (
	_ command.Commander[MountCommand]         = (*MountHandler)(nil)
	_ command.Commander[UnmountCommand]       = (*UnmountHandler)(nil)
	_ command.Commander[ItemActionCommand]    = (*ItemActionHandler)(nil)
	_ command.Commander[InsertEntryCommand]   = (*InsertEntryHandler)(nil)
	_ command.Commander[RemoveItemCommand]    = (*RemoveItemHandler)(nil)
	_ command.Commander[ImportEntriesCommand] = (*ImportEntriesHandler)(nil)
)

// Controller is the accordion surface driven by the command handlers.
type Controller interface {
	Mount(ctx context.Context) error
	Unmount()
	Toggle(id int) error
	Open(id int) error
	Close(id int) error
	Append(entry interfaces.Entry) (*interfaces.Item, error)
	Prepend(entry interfaces.Entry) (*interfaces.Item, error)
	AppendBefore(entry interfaces.Entry, refID int) (*interfaces.Item, error)
	AppendAfter(entry interfaces.Entry, refID int) (*interfaces.Item, error)
	Remove(id int) error
}

// EntryStore persists imported entries.
type EntryStore interface {
	Save(ctx context.Context, collection string, entries []interfaces.Entry) error
}

// MountHandler mounts the accordion.
type MountHandler struct {
	inner *commands.Handler[MountCommand]
}

// NewMountHandler creates a handler bound to controller.
func NewMountHandler(controller Controller, logger interfaces.Logger, opts ...commands.HandlerOption[MountCommand]) *MountHandler {
	exec := func(ctx context.Context, _ MountCommand) error {
		return controller.Mount(ctx)
	}
	handlerOpts := []commands.HandlerOption[MountCommand]{
		commands.WithLogger[MountCommand](logger),
		commands.WithOperation[MountCommand](mountOperation),
		commands.WithTelemetry(commands.DefaultTelemetry[MountCommand](logger)),
	}
	return &MountHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[MountCommand].
func (h *MountHandler) Execute(ctx context.Context, msg MountCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UnmountHandler unmounts the accordion.
type UnmountHandler struct {
	inner *commands.Handler[UnmountCommand]
}

// NewUnmountHandler creates a handler bound to controller.
func NewUnmountHandler(controller Controller, logger interfaces.Logger, opts ...commands.HandlerOption[UnmountCommand]) *UnmountHandler {
	exec := func(_ context.Context, _ UnmountCommand) error {
		controller.Unmount()
		return nil
	}
	handlerOpts := []commands.HandlerOption[UnmountCommand]{
		commands.WithLogger[UnmountCommand](logger),
		commands.WithOperation[UnmountCommand](unmountOperation),
	}
	return &UnmountHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[UnmountCommand].
func (h *UnmountHandler) Execute(ctx context.Context, msg UnmountCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ItemActionHandler opens, closes or toggles items.
type ItemActionHandler struct {
	inner *commands.Handler[ItemActionCommand]
}

// NewItemActionHandler creates a handler bound to controller.
func NewItemActionHandler(controller Controller, logger interfaces.Logger, opts ...commands.HandlerOption[ItemActionCommand]) *ItemActionHandler {
	exec := func(_ context.Context, msg ItemActionCommand) error {
		switch msg.Action {
		case ActionOpen:
			return controller.Open(msg.ID)
		case ActionClose:
			return controller.Close(msg.ID)
		case ActionToggle:
			return controller.Toggle(msg.ID)
		default:
			return ErrUnknownAction
		}
	}
	handlerOpts := []commands.HandlerOption[ItemActionCommand]{
		commands.WithLogger[ItemActionCommand](logger),
		commands.WithOperation[ItemActionCommand](actionOperation),
		commands.WithMessageFields(func(msg ItemActionCommand) map[string]any {
			return map[string]any{"action": msg.Action, "item_id": msg.ID}
		}),
	}
	return &ItemActionHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ItemActionCommand].
func (h *ItemActionHandler) Execute(ctx context.Context, msg ItemActionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// InsertEntryHandler inserts synthesized items.
type InsertEntryHandler struct {
	inner *commands.Handler[InsertEntryCommand]
}

// NewInsertEntryHandler creates a handler bound to controller.
func NewInsertEntryHandler(controller Controller, logger interfaces.Logger, opts ...commands.HandlerOption[InsertEntryCommand]) *InsertEntryHandler {
	exec := func(_ context.Context, msg InsertEntryCommand) error {
		var err error
		switch msg.Mode {
		case interfaces.PlaceAppend:
			_, err = controller.Append(msg.Entry)
		case interfaces.PlacePrepend:
			_, err = controller.Prepend(msg.Entry)
		case interfaces.PlaceBefore:
			_, err = controller.AppendBefore(msg.Entry, *msg.Reference)
		case interfaces.PlaceAfter:
			_, err = controller.AppendAfter(msg.Entry, *msg.Reference)
		default:
			err = ErrUnknownPlacement
		}
		return err
	}
	handlerOpts := []commands.HandlerOption[InsertEntryCommand]{
		commands.WithLogger[InsertEntryCommand](logger),
		commands.WithOperation[InsertEntryCommand](insertOperation),
		commands.WithMessageFields(func(msg InsertEntryCommand) map[string]any {
			fields := map[string]any{"mode": string(msg.Mode), "item_id": msg.Entry.ID}
			if msg.Reference != nil {
				fields["reference"] = *msg.Reference
			}
			return fields
		}),
	}
	return &InsertEntryHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[InsertEntryCommand].
func (h *InsertEntryHandler) Execute(ctx context.Context, msg InsertEntryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RemoveItemHandler removes items.
type RemoveItemHandler struct {
	inner *commands.Handler[RemoveItemCommand]
}

// NewRemoveItemHandler creates a handler bound to controller.
func NewRemoveItemHandler(controller Controller, logger interfaces.Logger, opts ...commands.HandlerOption[RemoveItemCommand]) *RemoveItemHandler {
	exec := func(_ context.Context, msg RemoveItemCommand) error {
		return controller.Remove(msg.ID)
	}
	handlerOpts := []commands.HandlerOption[RemoveItemCommand]{
		commands.WithLogger[RemoveItemCommand](logger),
		commands.WithOperation[RemoveItemCommand](removeOperation),
		commands.WithMessageFields(func(msg RemoveItemCommand) map[string]any {
			return map[string]any{"item_id": msg.ID}
		}),
	}
	return &RemoveItemHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[RemoveItemCommand].
func (h *RemoveItemHandler) Execute(ctx context.Context, msg RemoveItemCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportEntriesHandler loads Markdown entry files into an entry store.
type ImportEntriesHandler struct {
	inner *commands.Handler[ImportEntriesCommand]
}

// NewImportEntriesHandler creates a handler saving into store.
func NewImportEntriesHandler(store EntryStore, logger interfaces.Logger, opts ...commands.HandlerOption[ImportEntriesCommand]) *ImportEntriesHandler {
	exec := func(ctx context.Context, msg ImportEntriesCommand) error {
		loader := markdown.NewLoader(os.DirFS(msg.Directory), markdown.LoaderConfig{Recursive: msg.Recursive})
		entries, err := loader.Load(ctx, ".")
		if err != nil {
			return err
		}
		return store.Save(ctx, msg.Collection, entries)
	}
	handlerOpts := []commands.HandlerOption[ImportEntriesCommand]{
		commands.WithLogger[ImportEntriesCommand](logger),
		commands.WithOperation[ImportEntriesCommand](importOperation),
		commands.WithMessageFields(func(msg ImportEntriesCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory, "collection": msg.Collection}
			if msg.Recursive {
				fields["recursive"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportEntriesCommand](logger)),
	}
	return &ImportEntriesHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ImportEntriesCommand].
func (h *ImportEntriesHandler) Execute(ctx context.Context, msg ImportEntriesCommand) error {
	return h.inner.Execute(ctx, msg)
}
