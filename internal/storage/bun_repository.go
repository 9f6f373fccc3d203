package storage

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunEntryRepository implements EntryRepository with optional caching.
type BunEntryRepository struct {
	repo repository.Repository[*EntryRecord]
}

var _ EntryRepository = (*BunEntryRepository)(nil)

// NewBunEntryRepository creates an entry repository without caching.
func NewBunEntryRepository(db *bun.DB) *BunEntryRepository {
	return NewBunEntryRepositoryWithCache(db, nil, nil)
}

// NewBunEntryRepositoryWithCache creates an entry repository with caching support.
func NewBunEntryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunEntryRepository {
	base := NewEntryRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunEntryRepository{repo: base}
}

func (r *BunEntryRepository) Create(ctx context.Context, record *EntryRecord) (*EntryRecord, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunEntryRepository) Update(ctx context.Context, record *EntryRecord) (*EntryRecord, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"header",
			"content",
			"position",
			"updated_at",
		),
	)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BunEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*EntryRecord, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunEntryRepository) GetByKey(ctx context.Context, key string) (*EntryRecord, error) {
	record, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return record, nil
}

func (r *BunEntryRepository) ListCollection(ctx context.Context, collection string) ([]*EntryRecord, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.collection = ?", NormalizeCollection(collection)).
			Order("position ASC", "entry_id ASC")
	}))
	return records, err
}

func (r *BunEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &EntryRecord{ID: id})
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("entry repository error: %w", err)
}

// NotFoundError is returned when an entry record cannot be located.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entry %q not found", e.Key)
}
