package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-accordion/internal/identity"
	"github.com/goliatone/go-accordion/internal/logging"
	"github.com/goliatone/go-accordion/internal/validation"
	"github.com/goliatone/go-accordion/pkg/interfaces"
)

// Store persists accordion entries grouped by collection.
type Store struct {
	repo   EntryRepository
	logger interfaces.Logger
	now    func() time.Time
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for storage operations.
func WithLogger(logger interfaces.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore constructs a Store over repo.
func NewStore(repo EntryRepository, opts ...StoreOption) *Store {
	s := &Store{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save replaces the contents of collection with entries. Positions follow slice
// order and records missing from entries are deleted, so a later List returns
// exactly the saved entries in the order they were given.
func (s *Store) Save(ctx context.Context, collection string, entries []interfaces.Entry) error {
	if NormalizeCollection(collection) == "" {
		return validation.MissingArgument("collection")
	}
	if err := validation.ValidateEntries(entries); err != nil {
		return err
	}

	now := s.now().UTC()
	kept := make(map[uuid.UUID]struct{}, len(entries))
	for position, entry := range entries {
		record := newRecord(collection, position, entry, now)
		existing, err := s.repo.GetByID(ctx, record.ID)
		switch {
		case err == nil:
			record.CreatedAt = existing.CreatedAt
			if _, err := s.repo.Update(ctx, record); err != nil {
				s.logger.Error("storage.entry.update_failed", "key", record.Key, "error", err)
				return err
			}
		case isNotFound(err):
			if _, err := s.repo.Create(ctx, record); err != nil {
				s.logger.Error("storage.entry.create_failed", "key", record.Key, "error", err)
				return err
			}
		default:
			return err
		}
		kept[record.ID] = struct{}{}
	}

	stale, err := s.repo.ListCollection(ctx, collection)
	if err != nil {
		return err
	}
	removed := 0
	for _, record := range stale {
		if _, ok := kept[record.ID]; ok {
			continue
		}
		if err := s.repo.Delete(ctx, record.ID); err != nil && !isNotFound(err) {
			s.logger.Error("storage.entry.prune_failed", "key", record.Key, "error", err)
			return err
		}
		removed++
	}
	s.logger.Info("storage.entries.saved", "collection", NormalizeCollection(collection), "count", len(entries), "removed", removed)
	return nil
}

// List returns the entries stored in collection ordered by position.
func (s *Store) List(ctx context.Context, collection string) ([]interfaces.Entry, error) {
	if NormalizeCollection(collection) == "" {
		return nil, validation.MissingArgument("collection")
	}
	records, err := s.repo.ListCollection(ctx, collection)
	if err != nil {
		return nil, err
	}
	entries := make([]interfaces.Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, record.Entry())
	}
	s.logger.Debug("storage.entries.listed", "collection", NormalizeCollection(collection), "count", len(entries))
	return entries, nil
}

// Delete removes the entry with id from collection.
func (s *Store) Delete(ctx context.Context, collection string, id int) error {
	if NormalizeCollection(collection) == "" {
		return validation.MissingArgument("collection")
	}
	if err := validation.ValidateID(id); err != nil {
		return err
	}
	recordID := identity.EntryUUID(NormalizeCollection(collection), id)
	if _, err := s.repo.GetByID(ctx, recordID); err != nil {
		if isNotFound(err) {
			return validation.NotFound("entry", id)
		}
		return err
	}
	err := s.repo.Delete(ctx, recordID)
	if isNotFound(err) {
		return validation.NotFound("entry", id)
	}
	if err != nil {
		return err
	}
	s.logger.Info("storage.entry.deleted", "collection", NormalizeCollection(collection), "item_id", id)
	return nil
}

func isNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
