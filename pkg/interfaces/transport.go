package interfaces

import "context"

// Fetcher retrieves the raw payload published at url. Timeouts and retries belong
// to the implementation; the accordion only supplies the context.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// EntryShaper converts a raw fetched payload into entries.
type EntryShaper interface {
	Shape(raw []byte) ([]Entry, error)
}
