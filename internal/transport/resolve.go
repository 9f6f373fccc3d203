package transport

import (
	"net/http"

	"github.com/goliatone/go-accordion/internal/logging"
	"github.com/goliatone/go-accordion/internal/runtimeconfig"
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// Source is a resolved ajax configuration.
type Source struct {
	URL     string
	Fetcher interfaces.Fetcher
	Shaper  interfaces.EntryShaper
}

// ResolveOptions tune the fetchers built by Resolve.
type ResolveOptions struct {
	Client   *http.Client
	FileRoot string
	Logger   interfaces.LoggerProvider
	// Fetchers registers extra schemes, such as db for the storage source.
	Fetchers map[string]interfaces.Fetcher
}

// Resolve turns the declarative ajax settings into a URL, fetcher and shaper.
// Explicit Fetcher and Shape values on the config win over the declarative ones.
func Resolve(ajax *runtimeconfig.AjaxConfig, routes runtimeconfig.RoutesConfig, opts ResolveOptions) (Source, error) {
	if ajax == nil {
		return Source{}, validation.MissingArgument("ajax")
	}
	if err := ajax.Validate(); err != nil {
		return Source{}, err
	}

	src := Source{URL: ajax.URL, Fetcher: ajax.Fetcher, Shaper: ajax.Shape}

	if src.URL == "" && ajax.Route != nil {
		resolver, err := NewRouteResolver(routes)
		if err != nil {
			return Source{}, validation.TransportFailure(err, "resolve ajax route")
		}
		url, err := resolver.Resolve(*ajax.Route)
		if err != nil {
			return Source{}, validation.TransportFailure(err, "resolve ajax route")
		}
		src.URL = url
	}

	if src.Fetcher == nil {
		mux := NewMux(&HTTPFetcher{
			Client:          opts.Client,
			MaxTries:        ajax.Retry.MaxTries,
			InitialInterval: ajax.Retry.InitialInterval,
			MaxElapsed:      ajax.Retry.MaxElapsed,
			Timeout:         ajax.Timeout,
			Logger:          logging.TransportLogger(opts.Logger),
		}, FileFetcher{Root: opts.FileRoot})
		for scheme, fetcher := range opts.Fetchers {
			mux.Handle(scheme, fetcher)
		}
		src.Fetcher = mux
	}

	if src.Shaper == nil {
		shaper, err := buildShaper(ajax.Shaper)
		if err != nil {
			return Source{}, err
		}
		src.Shaper = shaper
	}
	return src, nil
}

func buildShaper(cfg runtimeconfig.ShaperConfig) (interfaces.EntryShaper, error) {
	switch (runtimeconfig.AjaxConfig{Shaper: cfg}).ShaperKind() {
	case runtimeconfig.ShaperPath:
		return PathShaper{Items: cfg.Items, ID: cfg.ID, Header: cfg.Header, Content: cfg.Content}, nil
	case runtimeconfig.ShaperJSON:
		if cfg.Schema {
			return NewSchemaShaper()
		}
		return JSONShaper{}, nil
	default:
		return nil, validation.WrongType("ajax.shaper.kind", "json or path shaper")
	}
}
