package accordion

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-accordion/internal/events"
	"github.com/goliatone/go-accordion/internal/lifecycle"
	"github.com/goliatone/go-accordion/internal/storage"
	"github.com/goliatone/go-accordion/internal/transport"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

type (
	// Controller exports the lifecycle controller for consumers of the accordion package.
	Controller = lifecycle.Controller
	// Option customises a Controller.
	Option = lifecycle.Option
	// State is the mount state of a Controller.
	State = lifecycle.State

	Entry       = interfaces.Entry
	Item        = interfaces.Item
	ItemSource  = interfaces.ItemSource
	Classes     = interfaces.Classes
	Renderer    = interfaces.Renderer
	Placement   = interfaces.Placement
	Fetcher     = interfaces.Fetcher
	EntryShaper = interfaces.EntryShaper

	// Handler receives event payloads: an *Item for item events, the removed id
	// for remove.after and nil for the lifecycle events.
	Handler      = events.Handler
	Subscription = events.Subscription
	Bus          = events.Bus

	// FetcherFunc adapts a function to Fetcher.
	FetcherFunc = transport.FetcherFunc
	// ShaperFunc adapts a function to EntryShaper.
	ShaperFunc = transport.ShaperFunc
	// TransportOptions tune the fetchers built from the ajax configuration.
	TransportOptions = transport.ResolveOptions
)

const (
	StateUnmounted = lifecycle.StateUnmounted
	StateMounting  = lifecycle.StateMounting
	StateMounted   = lifecycle.StateMounted
)

const (
	EventMountBefore  = lifecycle.EventMountBefore
	EventMountAfter   = lifecycle.EventMountAfter
	EventAjaxBefore   = lifecycle.EventAjaxBefore
	EventAjaxSuccess  = lifecycle.EventAjaxSuccess
	EventOpenBefore   = lifecycle.EventOpenBefore
	EventOpenAfter    = lifecycle.EventOpenAfter
	EventCloseBefore  = lifecycle.EventCloseBefore
	EventCloseAfter   = lifecycle.EventCloseAfter
	EventAppend       = lifecycle.EventAppend
	EventPrepend      = lifecycle.EventPrepend
	EventAppendBefore = lifecycle.EventAppendBefore
	EventAppendAfter  = lifecycle.EventAppendAfter
	EventRemoveBefore = lifecycle.EventRemoveBefore
	EventRemoveAfter  = lifecycle.EventRemoveAfter
	EventDestroy      = lifecycle.EventDestroy
)

// New validates container and cfg and returns an unmounted controller. Logging
// is wired from cfg.Logging unless an option supplies a logger.
func New(container *html.Node, cfg Config, opts ...Option) (*Controller, error) {
	provider, err := NewLoggerProvider(cfg.Logging, nil)
	if err != nil {
		return nil, err
	}
	options := make([]Option, 0, len(opts)+1)
	options = append(options, lifecycle.WithLoggerProvider(provider))
	options = append(options, opts...)
	return lifecycle.New(container, cfg, options...)
}

// NewBus returns an event bus that can be shared between controllers.
func NewBus() *Bus {
	return events.New()
}

// WithRenderer replaces the default DOM renderer.
func WithRenderer(renderer Renderer) Option {
	return lifecycle.WithRenderer(renderer)
}

// WithLogger sets the lifecycle logger.
func WithLogger(logger interfaces.Logger) Option {
	return lifecycle.WithLogger(logger)
}

// WithLoggerProvider derives the controller and transport loggers from provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return lifecycle.WithLoggerProvider(provider)
}

// WithTransport tunes the fetchers built from the ajax configuration.
func WithTransport(opts TransportOptions) Option {
	return lifecycle.WithTransport(opts)
}

// WithFetcher serves ajax URLs with the given scheme through fetcher.
func WithFetcher(scheme string, fetcher Fetcher) Option {
	return lifecycle.WithFetcher(scheme, fetcher)
}

// WithBus shares an event bus between controllers.
func WithBus(bus *Bus) Option {
	return lifecycle.WithBus(bus)
}

// WithEntryStore serves db://<collection> ajax URLs from store.
func WithEntryStore(store *EntryStore) Option {
	return lifecycle.WithFetcher(storage.Scheme, storage.NewSource(store))
}
