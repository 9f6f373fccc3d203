package accordion

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-accordion/internal/logging"
	"github.com/goliatone/go-accordion/internal/storage"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// EntryStore persists entries grouped by collection. Stored collections are
// served to controllers through WithEntryStore as db://<collection> URLs.
type EntryStore = storage.Store

// OpenEntryStore wraps sqlDB for driver ("sqlite3" or "postgres"), creates the
// entry table when missing and returns a store logging through provider.
func OpenEntryStore(ctx context.Context, sqlDB *sql.DB, driver string, provider interfaces.LoggerProvider) (*EntryStore, error) {
	db, err := storage.NewDB(sqlDB, driver)
	if err != nil {
		return nil, err
	}
	if err := storage.CreateSchema(ctx, db); err != nil {
		return nil, err
	}
	return storage.NewStore(
		storage.NewBunEntryRepository(db),
		storage.WithLogger(logging.StorageLogger(provider)),
	), nil
}

// NewMemoryEntryStore returns a store kept in process memory.
func NewMemoryEntryStore() *EntryStore {
	return storage.NewStore(storage.NewMemoryRepository())
}
