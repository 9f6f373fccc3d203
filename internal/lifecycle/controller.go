// Package lifecycle owns the accordion state machine: it builds the item registry
// from markup, static entries and remote entries, drives the renderer and emits
// the lifecycle events.
package lifecycle

import (
	"sync"

	"golang.org/x/net/html"

	"github.com/goliatone/go-accordion/internal/dom"
	"github.com/goliatone/go-accordion/internal/events"
	"github.com/goliatone/go-accordion/internal/items"
	"github.com/goliatone/go-accordion/internal/logging"
	"github.com/goliatone/go-accordion/internal/runtimeconfig"
	"github.com/goliatone/go-accordion/internal/transport"
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// State is the mount state of a controller.
type State string

const (
	StateUnmounted State = "unmounted"
	StateMounting  State = "mounting"
	StateMounted   State = "mounted"
)

// Event names emitted by the controller.
const (
	EventMountBefore  = "mount.before"
	EventMountAfter   = "mount.after"
	EventAjaxBefore   = "ajaxEntries.before"
	EventAjaxSuccess  = "ajaxEntries.success"
	EventOpenBefore   = "open.before"
	EventOpenAfter    = "open.after"
	EventCloseBefore  = "close.before"
	EventCloseAfter   = "close.after"
	EventAppend       = "append"
	EventPrepend      = "prepend"
	EventAppendBefore = "appendBefore"
	EventAppendAfter  = "appendAfter"
	EventRemoveBefore = "remove.before"
	EventRemoveAfter  = "remove.after"
	EventDestroy      = "destroy"
)

// Batch names used in logs.
const (
	batchMarkup  = "markup"
	batchEntries = "entries"
	batchAjax    = "ajax"
)

// Option customises a Controller.
type Option func(*Controller)

// WithRenderer replaces the default DOM renderer.
func WithRenderer(renderer interfaces.Renderer) Option {
	return func(c *Controller) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// WithLogger sets the logger used for lifecycle transitions.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLoggerProvider derives the lifecycle logger from provider. The provider is
// also handed to the transports built for ajax.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Controller) {
		if provider != nil {
			c.logger = logging.LifecycleLogger(provider)
			c.transport.Logger = provider
		}
	}
}

// WithTransport tunes the fetchers built from the ajax configuration.
func WithTransport(opts transport.ResolveOptions) Option {
	return func(c *Controller) {
		if opts.Logger == nil {
			opts.Logger = c.transport.Logger
		}
		fetchers := make(map[string]interfaces.Fetcher, len(c.transport.Fetchers)+len(opts.Fetchers))
		for scheme, fetcher := range c.transport.Fetchers {
			fetchers[scheme] = fetcher
		}
		for scheme, fetcher := range opts.Fetchers {
			fetchers[scheme] = fetcher
		}
		opts.Fetchers = fetchers
		c.transport = opts
	}
}

// WithFetcher registers fetcher for URLs with the given scheme when the ajax
// fetcher is built from configuration.
func WithFetcher(scheme string, fetcher interfaces.Fetcher) Option {
	return func(c *Controller) {
		if scheme == "" || fetcher == nil {
			return
		}
		if c.transport.Fetchers == nil {
			c.transport.Fetchers = map[string]interfaces.Fetcher{}
		}
		c.transport.Fetchers[scheme] = fetcher
	}
}

// WithBus shares an event bus between controllers.
func WithBus(bus *events.Bus) Option {
	return func(c *Controller) {
		if bus != nil {
			c.bus = bus
		}
	}
}

// Controller is a single accordion widget bound to a <dl> container. Public
// methods are safe for concurrent use; event handlers run outside the internal
// lock and may call back into the controller.
type Controller struct {
	container *html.Node
	cfg       runtimeconfig.Config
	renderer  interfaces.Renderer
	bus       *events.Bus
	counter   *items.Counter
	logger    interfaces.Logger
	transport transport.ResolveOptions
	source    *transport.Source

	mu         sync.Mutex
	items      []*interfaces.Item
	state      State
	enabled    bool
	generation uint64

	// localMerged is set once the markup and static entry batches are in the
	// registry. Insertion waits for it.
	localMerged bool
}

// New validates container and cfg and returns an unmounted controller.
func New(container *html.Node, cfg runtimeconfig.Config, opts ...Option) (*Controller, error) {
	if err := validation.ValidateRootContainer(container); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		container: container,
		cfg:       cfg,
		bus:       events.New(),
		counter:   items.NewCounter(),
		logger:    logging.NoOp(),
		state:     StateUnmounted,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.renderer == nil {
		c.renderer = dom.New(container, cfg.Classes)
	}

	if cfg.Ajax != nil {
		src, err := transport.Resolve(cfg.Ajax, cfg.Routes, c.transport)
		if err != nil {
			return nil, err
		}
		c.source = &src
	}

	c.logger.Debug("lifecycle.created",
		"entries", len(cfg.Entries),
		"ajax", c.source != nil,
		"multiple", cfg.Multiple,
		"open_at", cfg.OpenAt,
	)
	return c, nil
}

// Config returns the configuration the controller was built with.
func (c *Controller) Config() runtimeconfig.Config {
	return c.cfg
}

// Renderer returns the renderer driven by the controller.
func (c *Controller) Renderer() interfaces.Renderer {
	return c.renderer
}

// Container returns the host <dl> node.
func (c *Controller) Container() *html.Node {
	return c.container
}

// AjaxURL reports the resolved remote entries URL, if any.
func (c *Controller) AjaxURL() string {
	if c.source == nil {
		return ""
	}
	return c.source.URL
}

// State reports the mount state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Enabled reports whether toggle, open and close are honoured.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Items returns a snapshot of the registry in presentation order.
func (c *Controller) Items() []*interfaces.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*interfaces.Item(nil), c.items...)
}

// FindByID returns the registered item with id, or nil.
func (c *Controller) FindByID(id int) *interfaces.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return items.FindByID(id, c.items)
}

// On subscribes handler to name and returns the controller for chaining.
func (c *Controller) On(name string, handler events.Handler) (*Controller, error) {
	if _, err := c.Subscribe(name, handler); err != nil {
		return nil, err
	}
	return c, nil
}

// Subscribe is On returning the subscription handle.
func (c *Controller) Subscribe(name string, handler events.Handler) (*events.Subscription, error) {
	if name == "" {
		return nil, validation.MissingArgument("eventName")
	}
	if handler == nil {
		return nil, validation.MissingArgument("handler")
	}
	return c.bus.On(name, handler), nil
}

func (c *Controller) emit(name string, payload any) {
	c.bus.Emit(name, payload)
}

func (c *Controller) itemLogger(item *interfaces.Item, batch string) interfaces.Logger {
	return logging.WithItemContext(c.logger, item.ID, batch, string(item.Source))
}
