package storage

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// Scheme is the URL scheme served by Source.
const Scheme = "db"

// Source exposes stored collections as ajax payloads. A URL of the form
// db://faq yields the JSON array of entries saved under the faq collection.
type Source struct {
	Store *Store
}

var _ interfaces.Fetcher = Source{}

// NewSource wraps store as a fetcher.
func NewSource(store *Store) Source {
	return Source{Store: store}
}

func (s Source) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if s.Store == nil {
		return nil, validation.TransportFailure(nil, "storage source has no store")
	}
	collection, err := CollectionFromURL(rawURL)
	if err != nil {
		return nil, validation.TransportFailure(err, "storage source "+rawURL)
	}
	entries, err := s.Store.List(ctx, collection)
	if err != nil {
		return nil, validation.TransportFailure(err, "storage source "+rawURL)
	}
	return json.Marshal(entries)
}

// CollectionFromURL extracts the collection name from a db:// URL.
func CollectionFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != Scheme {
		return "", validation.WrongType("url", Scheme+":// url")
	}
	collection := parsed.Host
	if collection == "" {
		collection = strings.Trim(parsed.Path, "/")
	}
	collection = NormalizeCollection(collection)
	if collection == "" {
		return "", validation.MissingArgument("collection")
	}
	return collection, nil
}
