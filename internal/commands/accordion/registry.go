package accordioncmd

import (
	"errors"

	"github.com/goliatone/go-accordion/internal/commands"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers; *command.Registry from go-command satisfies it.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterAccordionCommands. Import
// is nil unless an entry store was supplied.
type HandlerSet struct {
	Mount   *MountHandler
	Unmount *UnmountHandler
	Action  *ItemActionHandler
	Insert  *InsertEntryHandler
	Remove  *RemoveItemHandler
	Import  *ImportEntriesHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	store      EntryStore
	actionOpts []commands.HandlerOption[ItemActionCommand]
	insertOpts []commands.HandlerOption[InsertEntryCommand]
}

// WithEntryStore enables the import handler.
func WithEntryStore(store EntryStore) Option {
	return func(cfg *options) {
		cfg.store = store
	}
}

// WithItemActionOptions forwards options to the ItemActionHandler constructor.
func WithItemActionOptions(opts ...commands.HandlerOption[ItemActionCommand]) Option {
	return func(cfg *options) {
		cfg.actionOpts = append(cfg.actionOpts, opts...)
	}
}

// WithInsertEntryOptions forwards options to the InsertEntryHandler constructor.
func WithInsertEntryOptions(opts ...commands.HandlerOption[InsertEntryCommand]) Option {
	return func(cfg *options) {
		cfg.insertOpts = append(cfg.insertOpts, opts...)
	}
}

// RegisterAccordionCommands builds the accordion handlers and registers them
// with reg when it is not nil.
func RegisterAccordionCommands(reg CommandRegistry, controller Controller, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if controller == nil {
		return nil, errors.New("accordion command registration: controller is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "accordion")
	set := &HandlerSet{
		Mount:   NewMountHandler(controller, logger),
		Unmount: NewUnmountHandler(controller, logger),
		Action:  NewItemActionHandler(controller, logger, cfg.actionOpts...),
		Insert:  NewInsertEntryHandler(controller, logger, cfg.insertOpts...),
		Remove:  NewRemoveItemHandler(controller, logger),
	}
	if cfg.store != nil {
		set.Import = NewImportEntriesHandler(cfg.store, logger)
	}

	if reg != nil {
		handlers := []any{set.Mount, set.Unmount, set.Action, set.Insert, set.Remove}
		if set.Import != nil {
			handlers = append(handlers, set.Import)
		}
		for _, handler := range handlers {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
